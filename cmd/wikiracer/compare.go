package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/wikiracer/internal/config"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/search"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command races several strategies between the same pages.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <source> <goal>",
		Short: "Race several strategies between the same pages",
		Long: `Compare runs several search strategies from the same source to the same
goal and shows, side by side, the path each one found and how many pages it
had to fetch.

Strategies run concurrently, each with its own search state. With the page
cache enabled (the default) a page fetched by one strategy is served from
memory to the others, while every strategy's own fetch log stays complete.

Examples:
  # Compare every strategy over a directory of pages
  wikiracer compare Calvin_Li Wikipedia --corpus-dir ./pages

  # Compare only BFS and best-first, one at a time
  wikiracer compare --strategies bfs,best --concurrency 1 Calvin_Li Wikipedia -d ./pages

  # Output the comparison as Markdown
  wikiracer compare --markdown -o compare.md Calvin_Li Wikipedia -d ./pages`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringSlice("strategies", search.Names(),
		"Strategies to compare")
	cmd.Flags().Int("concurrency", config.DefaultConcurrency,
		"Number of strategies run at once")
	addSearchFlags(cmd)
	addCorpusFlags(cmd)
	addReportFlags(cmd)
	cmd.Flags().Bool("no-save", false, "Do not save the races to the database")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	strategies, err := cmd.Flags().GetStringSlice("strategies")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	return runCompare(ctx, cfg, strategies, logger, cmd.OutOrStdout())
}

// runCompare races every strategy and outputs the comparison.
func runCompare(ctx context.Context, cfg *config.Config, strategies []string, logger *slog.Logger, stdout io.Writer) error {
	if len(strategies) == 0 {
		return fmt.Errorf("%w: no strategies given", search.ErrUnknownStrategy)
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	src, err := openCorpus(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	r := newRacer(cfg, src, logger)
	reports, compareErr := r.Compare(ctx, strategies, cfg.Source, cfg.Goal)
	if reports == nil {
		return compareErr
	}

	completed := make([]*model.RaceReport, 0, len(reports))
	for _, rep := range reports {
		if rep != nil {
			completed = append(completed, rep)
		}
	}

	if err := saveRaces(ctx, cfg, store, logger, completed...); err != nil {
		return err
	}

	if err := outputReport(cfg, stdout, func(w reportWriter) error {
		_, err := w.WriteComparison(completed)
		return err
	}); err != nil {
		return err
	}

	return compareErr
}
