package recommend

import (
	"fmt"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// FallbackLine is emitted when every probed endpoint turned out
// unreachable or malformed.
const FallbackLine = "No usable endpoints found; consider alternative data sources (bulk downloads, third-party datasets)"

// Recommend derives the ranked recommendation list from a report.
// It reads only the category tallies and per-category labels, so it is
// deterministic and order-stable for a given report.
func Recommend(report *model.Report) []string {
	recs := make([]string, 0)

	// Exactly one of the three access strategies is recommended, in
	// precedence order: a working JSON API makes XML and scraping moot.
	switch {
	case report.Counts[model.CategoryJSONAPI] > 0:
		for _, label := range report.Labels(model.CategoryJSONAPI) {
			recs = append(recs, fmt.Sprintf("Prefer direct JSON API access via %s", label))
		}
	case report.Counts[model.CategoryXMLAPI] > 0:
		for _, label := range report.Labels(model.CategoryXMLAPI) {
			recs = append(recs, fmt.Sprintf("Use XML API access via %s", label))
		}
	case report.Counts[model.CategoryHTMLScrapable] > 0:
		for _, label := range report.Labels(model.CategoryHTMLScrapable) {
			recs = append(recs, fmt.Sprintf("Fall back to scraping the page at %s", label))
		}
	}

	// Authenticated endpoints are worth mentioning whatever else works:
	// credentials may unlock a better source than the open ones.
	if report.Counts[model.CategoryAuthRequired] > 0 {
		for _, label := range report.Labels(model.CategoryAuthRequired) {
			recs = append(recs, fmt.Sprintf("Authenticated access may be viable for %s with credentials", label))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, FallbackLine)
	}

	return recs
}
