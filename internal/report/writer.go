package report

import (
	"io"

	"github.com/ybenjamin/patentprobe/internal/model"
)

// Writer defines the interface for report output.
// Implementations write probe results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// categoryHeading maps a category to its human-readable section heading.
func categoryHeading(c model.Category) string {
	switch c {
	case model.CategoryJSONAPI:
		return "JSON APIs"
	case model.CategoryXMLAPI:
		return "XML APIs"
	case model.CategoryHTMLScrapable:
		return "Scrapable HTML Pages"
	case model.CategoryAuthRequired:
		return "Authentication Required"
	case model.CategoryUnreachable:
		return "Unreachable"
	case model.CategoryMalformed:
		return "Malformed Responses"
	default:
		return c.String()
	}
}
