package classifier

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ybenjamin/patentprobe/internal/model"
	"github.com/ybenjamin/patentprobe/internal/parser"
)

// Classify inspects a probe outcome and returns its classified result.
// It always returns a result and never panics on malformed payloads;
// parse failures map to the malformed category.
func Classify(outcome model.Outcome) *model.Result {
	result := &model.Result{
		Label: outcome.Target.Label,
		URL:   outcome.FinalURL,
	}
	if result.URL == "" {
		result.URL = outcome.Target.URL
	}

	// Rule 1: transport-level failures are unreachable, whatever the
	// target hinted at.
	if outcome.Transport != model.TransportSuccess {
		result.Category = model.CategoryUnreachable
		result.Note = fmt.Sprintf("%s: %s", outcome.Transport, outcome.Err)
		return result
	}

	// Rule 2: authentication walls before any content inspection.
	if outcome.StatusCode == http.StatusUnauthorized || outcome.StatusCode == http.StatusForbidden {
		result.Category = model.CategoryAuthRequired
		result.Note = fmt.Sprintf("HTTP %d", outcome.StatusCode)
		return result
	}

	// Rule 3: any other non-200 status. 400/405 often mean the endpoint
	// exists but expects different input; for discovery purposes they
	// still fold into unreachable, with the status preserved in the note.
	if outcome.StatusCode != http.StatusOK {
		result.Category = model.CategoryUnreachable
		result.Note = fmt.Sprintf("HTTP %d", outcome.StatusCode)
		return result
	}

	contentType := strings.ToLower(outcome.ContentType)

	// Rule 4: verify a claimed JSON payload.
	if strings.Contains(contentType, "json") {
		if json.Valid(outcome.Body) {
			result.Category = model.CategoryJSONAPI
			result.Note = "valid JSON"
		} else {
			result.Category = model.CategoryMalformed
			result.Note = "claims JSON, invalid"
		}
		return result
	}

	// Rule 5: verify a claimed XML payload. Absent a helpful content
	// type, a body whose leading non-whitespace byte is '<' and that is
	// well-formed XML also counts.
	if strings.Contains(contentType, "xml") {
		if wellFormedXML(outcome.Body) {
			result.Category = model.CategoryXMLAPI
			result.Note = "valid XML"
		} else {
			result.Category = model.CategoryMalformed
			result.Note = "claims XML, malformed"
		}
		return result
	}
	if !strings.Contains(contentType, "html") && leadsWithAngleBracket(outcome.Body) && wellFormedXML(outcome.Body) {
		result.Category = model.CategoryXMLAPI
		result.Note = "valid XML (no content type)"
		return result
	}

	// Rule 6: a 200 with HTML or unspecified content is scrapable.
	result.Category = model.CategoryHTMLScrapable
	result.Note = "HTML page"
	if outcome.FollowedForm {
		result.Note = "HTML page (form action followed)"
	}

	if outcome.Target.Variant == model.VariantDeepScan {
		deepScan(outcome, result)
	}

	return result
}

// deepScan inspects HTML markup for embedded endpoint hints: script
// blocks mentioning API-like paths become note content (informational,
// never auto-probed), and rooted form actions become secondary probe
// targets with synthesized labels.
//
// Depth is capped at 1: results for discovered targets never get their
// own secondaries, which guarantees termination even when discovered
// links point back into the catalog.
func deepScan(outcome model.Outcome, result *model.Result) {
	if strings.Contains(outcome.Target.Label, model.DiscoveredMarker) {
		return
	}

	p, err := parser.New(result.URL)
	if err != nil {
		return
	}
	scan, err := p.Parse(bytes.NewReader(outcome.Body))
	if err != nil {
		return
	}

	if len(scan.APIHints) > 0 {
		result.Note += fmt.Sprintf("; %d script hint(s): %s",
			len(scan.APIHints), strings.Join(scan.APIHints, " | "))
	}

	seen := make(map[string]bool)
	for _, action := range scan.RootedFormActions {
		if seen[action] {
			continue
		}
		seen[action] = true
		result.Secondary = append(result.Secondary, model.ProbeTarget{
			Label:   fmt.Sprintf("%s%s%d", outcome.Target.Label, model.DiscoveredMarker, len(result.Secondary)),
			URL:     action,
			Variant: model.VariantPlain,
		})
	}
}

// wellFormedXML reports whether the body parses as XML from start to end.
// json.Valid has no XML counterpart in the standard library, so we run
// the token stream through a decoder.
func wellFormedXML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return false
	}

	decoder := xml.NewDecoder(bytes.NewReader(trimmed))
	sawElement := false
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return sawElement
		}
		if err != nil {
			return false
		}
		if _, ok := tok.(xml.StartElement); ok {
			sawElement = true
		}
	}
}

// leadsWithAngleBracket reports whether the first non-whitespace byte of
// the body is '<'.
func leadsWithAngleBracket(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '<'
}
