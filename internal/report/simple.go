package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

const (
	ruleWidth  = 70
	timeLayout = "2006-01-02 15:04:05 MST"
)

// SimpleWriter outputs human-readable text reports.
type SimpleWriter struct {
	baseWriter

	// verbose adds the full fetch log to race reports.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the fetch log in race reports.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the race report in human-readable format.
func (w *SimpleWriter) Write(report *model.RaceReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "WIKIRACER REPORT")

	fmt.Fprintf(&sb, "Strategy:  %s\n", report.Strategy)
	fmt.Fprintf(&sb, "Source:    %s\n", report.Source)
	fmt.Fprintf(&sb, "Goal:      %s\n", report.Goal)
	fmt.Fprintf(&sb, "Started:   %s\n", report.StartedAt.Format(timeLayout))
	fmt.Fprintf(&sb, "Duration:  %s\n", report.Duration)
	fmt.Fprintf(&sb, "Fetches:   %d\n", report.FetchCount())
	fmt.Fprintf(&sb, "Status:    %s\n", statusLine(report))
	sb.WriteString("\n")

	if report.Found {
		writeSection(&sb, "PATH")
		for i, page := range report.Path {
			fmt.Fprintf(&sb, "  %2d. %s\n", i, page)
		}
		sb.WriteString("\n")
	}

	if w.verbose {
		writeSection(&sb, "FETCH LOG")
		for i, page := range report.Requests {
			fmt.Fprintf(&sb, "  %4d  %s\n", i+1, page)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

// WriteComparison outputs one line per strategy.
func (w *SimpleWriter) WriteComparison(reports []*model.RaceReport) (int, error) {
	var sb strings.Builder

	writeBanner(&sb, "STRATEGY COMPARISON")
	if len(reports) > 0 {
		fmt.Fprintf(&sb, "Source:  %s\n", reports[0].Source)
		fmt.Fprintf(&sb, "Goal:    %s\n\n", reports[0].Goal)
	}

	fmt.Fprintf(&sb, "  %-10s %-8s %7s %8s  %s\n", "STRATEGY", "STATUS", "LINKS", "FETCHES", "DURATION")
	for _, r := range reports {
		if r == nil {
			continue
		}
		fmt.Fprintf(&sb, "  %-10s %-8s %7s %8d  %s\n",
			r.Strategy, status(r), pathLength(r), r.FetchCount(), r.Duration)
	}
	sb.WriteString("\n")

	for _, r := range reports {
		if r == nil || !r.Found {
			continue
		}
		fmt.Fprintf(&sb, "  %s: %s\n", r.Strategy, r.Path)
	}
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

// WriteHistory outputs one line per saved race.
func (w *SimpleWriter) WriteHistory(races []database.RaceSummary) (int, error) {
	if len(races) == 0 {
		return io.WriteString(w.output, "No races recorded.\n")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-36s  %-19s  %-8s  %-5s  %5s  %7s  %s\n",
		"ID", "STARTED", "STRATEGY", "FOUND", "LINKS", "FETCHES", "ROUTE")
	for _, r := range races {
		links := "-"
		if r.Found {
			links = strconv.Itoa(r.PathLength)
		}
		fmt.Fprintf(&sb, "%-36s  %-19s  %-8s  %-5t  %5s  %7d  %s -> %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Strategy, r.Found,
			links, r.FetchCount, r.Source, r.Goal)
	}

	return io.WriteString(w.output, sb.String())
}

func statusLine(report *model.RaceReport) string {
	switch {
	case report.Found:
		return fmt.Sprintf("found (%d links)", report.Path.Edges())
	case report.Error != "":
		return "no path - " + report.Error
	default:
		return "no path"
	}
}

func writeBanner(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", (ruleWidth-len(title))/2))
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}
