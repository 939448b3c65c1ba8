package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/ybenjamin/patentprobe/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeEndpoints(md, report)
	w.writeRecommendations(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with scan information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Patentprobe Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Scan Date", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Endpoints Probed", strconv.Itoa(report.TotalResults())},
			{"Elapsed", report.Elapsed.Round(fmtElapsedRound).String()},
			{"Status", w.getStatusText(report)},
		},
	})
	md.PlainText("")
}

// getStatusText returns the status text based on report state.
func (w *MarkdownWriter) getStatusText(report *model.Report) string {
	if report.Cancelled {
		return "⚠️ Cancelled (partial results)"
	}
	return "✅ Complete"
}

// writeSummary writes the category summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2("Category Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(model.Categories)+1)
	for _, c := range model.Categories {
		rows = append(rows, []string{
			w.getCategoryIcon(c) + " " + categoryHeading(c),
			strconv.Itoa(report.Counts[c]),
		})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(report.TotalResults()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Category", "Count"},
		Rows:   rows,
	})
	md.PlainText("")

	if report.TotalResults() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// getCategoryIcon returns a visual indicator for the category.
func (w *MarkdownWriter) getCategoryIcon(c model.Category) string {
	switch c {
	case model.CategoryJSONAPI:
		return "🟢"
	case model.CategoryXMLAPI:
		return "🔵"
	case model.CategoryHTMLScrapable:
		return "🟡"
	case model.CategoryAuthRequired:
		return "🟠"
	case model.CategoryUnreachable:
		return "🔴"
	case model.CategoryMalformed:
		return "⚪"
	default:
		return ""
	}
}

// writePieChart writes a mermaid pie chart for category distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Endpoint Category Distribution"),
		piechart.WithShowData(true),
	)

	for _, c := range model.Categories {
		if report.Counts[c] > 0 {
			chart.LabelAndIntValue(categoryHeading(c), uint64(report.Counts[c]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on category counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.Report) {
	usable := report.Counts[model.CategoryJSONAPI] +
		report.Counts[model.CategoryXMLAPI] +
		report.Counts[model.CategoryHTMLScrapable]

	switch {
	case report.Counts[model.CategoryJSONAPI] > 0:
		md.Tipf(
			"%d endpoint(s) serve structured JSON. Prefer these for programmatic access.",
			report.Counts[model.CategoryJSONAPI],
		)
	case report.Counts[model.CategoryXMLAPI] > 0:
		md.Notef(
			"No JSON APIs found, but %d endpoint(s) serve XML.",
			report.Counts[model.CategoryXMLAPI],
		)
	case report.Counts[model.CategoryHTMLScrapable] > 0:
		md.Importantf(
			"Only HTML pages are reachable. Scraping %d page(s) is the remaining option.",
			report.Counts[model.CategoryHTMLScrapable],
		)
	case usable == 0 && report.TotalResults() > 0:
		md.Warning("No usable endpoints found. Consider alternative data sources.")
	}
	md.PlainText("")
}

// writeEndpoints writes all probed endpoints grouped by category.
func (w *MarkdownWriter) writeEndpoints(md *markdown.Markdown, report *model.Report) {
	md.H2("Endpoints")
	md.PlainText("")

	if report.TotalResults() == 0 {
		md.PlainText("No endpoints probed.")
		md.PlainText("")
		return
	}

	for _, c := range model.Categories {
		labels := report.Labels(c)
		if len(labels) == 0 {
			continue
		}

		md.PlainText("### " + w.getCategoryIcon(c) + " " + categoryHeading(c))
		md.PlainText("")
		w.writeEndpointTable(md, report, labels)
	}
}

// writeEndpointTable writes a table of endpoints with details.
func (w *MarkdownWriter) writeEndpointTable(md *markdown.Markdown, report *model.Report, labels []string) {
	rows := make([][]string, len(labels))
	for i, label := range labels {
		res := report.Results[label]
		note := res.Note
		if note == "" {
			note = "-"
		}
		name := res.Label
		if res.Discovered() {
			name = name + " (discovered)"
		}

		rows[i] = []string{
			name,
			"`" + truncateString(res.URL, 60) + "`",
			truncateString(note, 80),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Endpoint", "URL", "Note"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeRecommendations writes the ranked access recommendations.
func (w *MarkdownWriter) writeRecommendations(md *markdown.Markdown, report *model.Report) {
	md.H2("Recommendations")
	md.PlainText("")

	if len(report.Recommendations) == 0 {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	md.OrderedList(report.Recommendations...)
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [patentprobe](https://github.com/ybenjamin/patentprobe)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
