package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nao1215/wikiracer/internal/config"
	"github.com/nao1215/wikiracer/internal/report"
)

// reportWriter is the report format selected by the configuration.
type reportWriter = report.Writer

// outputReport opens the configured output file, or uses stdout when none is
// configured, and hands fn the writer for the configured format.
func outputReport(cfg *config.Config, stdout io.Writer, fn func(w reportWriter) error) error {
	output := stdout

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	if err := fn(newReportWriter(cfg, output)); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// newReportWriter selects the JSON, Markdown or plain text writer.
func newReportWriter(cfg *config.Config, output io.Writer) reportWriter {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
}
