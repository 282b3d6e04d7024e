package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

// JSONWriter outputs reports in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in JSON format.
func (w *JSONWriter) Write(report *model.RaceReport) (int, error) {
	return w.writeJSON(report)
}

// Comparison is the JSON document written for a strategy comparison.
type Comparison struct {
	Source  model.PageID        `json:"source"`
	Goal    model.PageID        `json:"goal"`
	Reports []*model.RaceReport `json:"reports"`
}

// WriteComparison outputs the reports wrapped in a Comparison.
func (w *JSONWriter) WriteComparison(reports []*model.RaceReport) (int, error) {
	doc := Comparison{Reports: reports}
	if len(reports) > 0 {
		doc.Source = reports[0].Source
		doc.Goal = reports[0].Goal
	}
	return w.writeJSON(doc)
}

// WriteHistory outputs the summaries as a JSON array.
func (w *JSONWriter) WriteHistory(races []database.RaceSummary) (int, error) {
	if races == nil {
		races = []database.RaceSummary{}
	}
	return w.writeJSON(races)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
