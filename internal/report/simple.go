package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// fmtElapsedRound is the precision used when printing elapsed time.
const fmtElapsedRound = 10 * time.Millisecond

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting and per-category groupings.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showEmpty controls whether categories with no endpoints are shown.
	showEmpty bool

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowEmpty configures the writer to show empty categories.
func WithShowEmpty(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showEmpty = show
	}
}

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showEmpty:  false,
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeEndpoints(&sb, report)
	w.writeRecommendations(&sb, report)
	w.writeFooter(&sb)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with scan information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                        PATENTPROBE REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Scan Date:       %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Endpoints:       %d\n", report.TotalResults()))
	sb.WriteString(fmt.Sprintf("Elapsed:         %s\n", report.Elapsed.Round(fmtElapsedRound)))

	if report.Cancelled {
		sb.WriteString("Status:          CANCELLED (partial results)\n")
	} else {
		sb.WriteString("Status:          Complete\n")
	}

	sb.WriteString("\n")
}

// writeSummary writes the category summary section.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("CATEGORY SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, c := range model.Categories {
		sb.WriteString(fmt.Sprintf("  %-16s %d\n", c.String()+":", report.Counts[c]))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %-16s %d endpoints\n", "total:", report.TotalResults()))
	sb.WriteString("\n")
}

// writeEndpoints writes all probed endpoints grouped by category.
func (w *SimpleWriter) writeEndpoints(sb *strings.Builder, report *model.Report) {
	if report.TotalResults() == 0 && !w.showEmpty {
		return
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("ENDPOINTS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	for _, c := range model.Categories {
		labels := report.Labels(c)
		if len(labels) == 0 && !w.showEmpty {
			continue
		}

		w.writeCategory(sb, report, c, labels)
	}
}

// writeCategory writes endpoints of a specific category.
func (w *SimpleWriter) writeCategory(sb *strings.Builder, report *model.Report, c model.Category, labels []string) {
	indicator := w.getCategoryIndicator(c)
	sb.WriteString(fmt.Sprintf("[%s] %s\n", indicator, categoryHeading(c)))

	if len(labels) == 0 {
		sb.WriteString("  No endpoints\n\n")
		return
	}

	for _, label := range labels {
		res := report.Results[label]
		sb.WriteString(fmt.Sprintf("  * %s\n", res.Label))
		sb.WriteString(fmt.Sprintf("    URL: %s\n", res.URL))
		if w.verbose && res.Note != "" {
			sb.WriteString(fmt.Sprintf("    Note: %s\n", res.Note))
		}
	}
	sb.WriteString("\n")
}

// getCategoryIndicator returns a visual indicator for the category.
func (w *SimpleWriter) getCategoryIndicator(c model.Category) string {
	switch c {
	case model.CategoryJSONAPI:
		return "++"
	case model.CategoryXMLAPI:
		return "+"
	case model.CategoryHTMLScrapable:
		return "~"
	case model.CategoryAuthRequired:
		return "#"
	case model.CategoryUnreachable:
		return "x"
	case model.CategoryMalformed:
		return "?"
	default:
		return " "
	}
}

// writeRecommendations writes the ranked access recommendations.
func (w *SimpleWriter) writeRecommendations(sb *strings.Builder, report *model.Report) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("RECOMMENDATIONS\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(report.Recommendations) == 0 {
		sb.WriteString("  None\n\n")
		return
	}

	for i, rec := range report.Recommendations {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, rec))
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("Report generated by patentprobe\n")
	sb.WriteString("https://github.com/ybenjamin/patentprobe\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
