package catalog

import (
	"fmt"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// Builtin returns the built-in patent-data catalog.
// The slice is freshly allocated on each call so callers can modify it
// without affecting later runs.
//
// Target ordering groups endpoints by provider; it has no effect on
// probing, which runs concurrently.
func Builtin() []model.ProbeTarget {
	return []model.ProbeTarget{
		// PatentsView: the legacy API answered without credentials for
		// years; the search API replaced it and may gate access.
		{
			Label: "patentsview-legacy",
			URL:   "https://api.patentsview.org/patents/query",
			Params: map[string]string{
				"q": `{"_text_any":{"patent_title":"artificial intelligence"}}`,
				"f": `["patent_number","patent_title","patent_date"]`,
				"o": `{"per_page":3}`,
			},
			Hint: model.HintExpectJSON,
		},
		{
			Label: "patentsview-search",
			URL:   "https://search.patentsview.org/api/v1/patent/",
			Params: map[string]string{
				"q": `{"patent_title":"artificial intelligence"}`,
				"f": `["patent_id","patent_title","patent_date"]`,
				"o": `{"per_page":3}`,
			},
			Hint: model.HintExpectJSON,
		},

		// USPTO official APIs.
		{
			Label: "uspto-open-data",
			URL:   "https://data.uspto.gov/api/",
			Hint:  model.HintExpectJSON,
		},
		{
			Label: "uspto-ptab",
			URL:   "https://api.uspto.gov/ptab/v2/search",
			Hint:  model.HintExpectJSON,
		},
		{
			Label: "uspto-ped",
			URL:   "https://ped.uspto.gov/api/queries",
			Hint:  model.HintExpectJSON,
		},
		{
			Label: "uspto-assignment",
			URL:   "https://assignment-api.uspto.gov/patent/search",
			Params: map[string]string{
				"query":  "artificial",
				"format": "xml",
			},
			Hint: model.HintExpectXML,
		},
		{
			Label: "uspto-tsdr",
			URL:   "https://tsdrapi.uspto.gov/ts/cd/casestatus/sn88888888/info.xml",
			Hint:  model.HintExpectXML,
		},
		{
			Label: "uspto-developer-portal",
			URL:   "https://developer.uspto.gov/api-catalog",
		},

		// Patent Public Search: the web application embeds its query
		// endpoints in bundled JavaScript and search forms, so this one
		// gets the deep scan.
		{
			Label:   "ppubs-webapp",
			URL:     "https://ppubs.uspto.gov/pubwebapp/",
			Variant: model.VariantDeepScan,
		},
		{
			Label: "ppubs-dirsearch",
			URL:   "https://ppubs.uspto.gov/dirsearch-public/searches",
		},

		// Bulk data portals.
		{
			Label: "uspto-bulkdata",
			URL:   "https://bulkdata.uspto.gov/",
		},
		{
			Label: "uspto-bulkdata-portal",
			URL:   "https://data.uspto.gov/bulkdata",
		},

		// Alternative sources.
		{
			Label: "google-patents",
			URL:   "https://patents.google.com/",
		},
		{
			Label: "google-patents-xhr",
			URL:   "https://patents.google.com/xhr/query",
			Params: map[string]string{
				"url":     "q=artificial+intelligence&num=2",
				"content": "1",
			},
			Hint: model.HintExpectJSON,
		},
		{
			Label: "epo-ops",
			URL:   "https://ops.epo.org/3.2/rest-services/published-data/search/biblio",
			Params: map[string]string{
				"q": "artificial intelligence",
			},
		},
		{
			Label:   "free-patents-online",
			URL:     "http://www.freepatentsonline.com/search.html",
			Variant: model.VariantFollowForm,
		},
		{
			Label: "espacenet",
			URL:   "https://worldwide.espacenet.com/",
		},
		{
			Label: "lens",
			URL:   "https://www.lens.org/lens/",
		},
	}
}

// Validate checks a catalog for construction bugs.
// Duplicate labels and empty fields are programming errors in catalog
// construction, not environmental conditions, so the pipeline fails fast
// on them instead of probing a broken list.
func Validate(targets []model.ProbeTarget) error {
	if len(targets) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]bool, len(targets))
	for i, t := range targets {
		if t.Label == "" {
			return fmt.Errorf("target %d: %w", i, ErrMissingLabel)
		}
		if t.URL == "" {
			return fmt.Errorf("target %q: %w", t.Label, ErrMissingURL)
		}
		if seen[t.Label] {
			return fmt.Errorf("label %q: %w", t.Label, ErrDuplicateLabel)
		}
		seen[t.Label] = true
	}
	return nil
}
