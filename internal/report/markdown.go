package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the race report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RaceReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Wikiracer Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Strategy", report.Strategy},
			{"Source", code(report.Source.String())},
			{"Goal", code(report.Goal.String())},
			{"Started", report.StartedAt.Format(timeLayout)},
			{"Duration", report.Duration.String()},
			{"Fetches", strconv.Itoa(report.FetchCount())},
			{"Links", pathLength(report)},
		},
	})
	md.PlainText("")

	writeOutcome(md, report)

	if report.Found {
		md.H2("Path")
		md.PlainText("")
		steps := make([]string, len(report.Path))
		for i, page := range report.Path {
			steps[i] = code(page.String())
		}
		md.BulletList(steps...)
		md.PlainText("")
	}

	if len(report.Requests) > 0 {
		requests := make([]string, len(report.Requests))
		for i, page := range report.Requests {
			requests[i] = strconv.Itoa(i+1) + ". " + page.String()
		}
		md.Details("Fetch log", strings.Join(requests, "\n"))
		md.PlainText("")
	}

	writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteComparison outputs a table of strategies and a chart of their fetch counts.
func (w *MarkdownWriter) WriteComparison(reports []*model.RaceReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Strategy Comparison")
	md.PlainText("")
	if len(reports) > 0 {
		md.PlainTextf("From %s to %s", code(reports[0].Source.String()), code(reports[0].Goal.String()))
		md.PlainText("")
	}

	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		rows = append(rows, []string{
			r.Strategy,
			status(r),
			pathLength(r),
			strconv.Itoa(r.FetchCount()),
			r.Duration.String(),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Strategy", "Status", "Links", "Fetches", "Duration"},
		Rows:   rows,
	})
	md.PlainText("")

	writeFetchChart(md, reports)

	if best := fewestFetches(reports); best != nil {
		md.Tipf("%s found a %d-link path with %d fetches.", best.Strategy, best.Path.Edges(), best.FetchCount())
	} else {
		md.Caution("No strategy found a path.")
	}
	md.PlainText("")

	writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteHistory outputs saved races as a table.
func (w *MarkdownWriter) WriteHistory(races []database.RaceSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Race History")
	md.PlainText("")

	if len(races) == 0 {
		md.Note("No races recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(races))
	for i, r := range races {
		links := "-"
		if r.Found {
			links = strconv.Itoa(r.PathLength)
		}
		rows[i] = []string{
			r.StartedAt.Format(timeLayout),
			r.Strategy,
			code(r.Source.String()),
			code(r.Goal.String()),
			links,
			strconv.Itoa(r.FetchCount),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Started", "Strategy", "Source", "Goal", "Links", "Fetches"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// writeOutcome writes an alert describing whether a path was found.
func writeOutcome(md *markdown.Markdown, report *model.RaceReport) {
	switch {
	case report.Found:
		md.Tipf("Path found: %d links after %d fetches.", report.Path.Edges(), report.FetchCount())
	case report.Error != "":
		md.Cautionf("No path: %s", report.Error)
	default:
		md.Warning("No path found.")
	}
	md.PlainText("")
}

// writeFetchChart writes a mermaid pie chart of fetches per strategy.
func writeFetchChart(md *markdown.Markdown, reports []*model.RaceReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Fetches per Strategy"),
		piechart.WithShowData(true),
	)

	total := 0
	for _, r := range reports {
		if r == nil || r.FetchCount() == 0 {
			continue
		}
		chart.LabelAndIntValue(r.Strategy, uint64(r.FetchCount()))
		total += r.FetchCount()
	}
	if total == 0 {
		return
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// fewestFetches returns the successful report with the fewest fetches.
func fewestFetches(reports []*model.RaceReport) *model.RaceReport {
	var best *model.RaceReport
	for _, r := range reports {
		if r == nil || !r.Found {
			continue
		}
		if best == nil || r.FetchCount() < best.FetchCount() {
			best = r
		}
	}
	return best
}

func writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [wikiracer](https://github.com/nao1215/wikiracer)*")
}

func code(s string) string {
	return "`" + s + "`"
}
