package report

import (
	"io"
	"strconv"

	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs a single race report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.RaceReport) (int, error)

	// WriteComparison outputs reports of several strategies run between the
	// same pages.
	WriteComparison(reports []*model.RaceReport) (int, error)

	// WriteHistory outputs summaries of saved races.
	WriteHistory(races []database.RaceSummary) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// It stops on the first error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
func (m *MultiWriter) Write(report *model.RaceReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(report) })
}

// WriteComparison outputs the reports to all configured Writers.
func (m *MultiWriter) WriteComparison(reports []*model.RaceReport) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteComparison(reports) })
}

// WriteHistory outputs the summaries to all configured Writers.
func (m *MultiWriter) WriteHistory(races []database.RaceSummary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteHistory(races) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
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

// status returns a one-word outcome for the report.
func status(report *model.RaceReport) string {
	switch {
	case report.Found:
		return "found"
	case report.Error != "":
		return "failed"
	default:
		return "no path"
	}
}

// pathLength returns the number of links in the path, or "-" when there is none.
func pathLength(report *model.RaceReport) string {
	if !report.Found {
		return "-"
	}
	return strconv.Itoa(report.Path.Edges())
}
