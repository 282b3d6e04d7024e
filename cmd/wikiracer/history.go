package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/wikiracer/internal/config"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/spf13/cobra"
)

// defaultHistoryLimit is the number of races history lists by default.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved races",
		Long: `History lists the races saved by 'wikiracer race' and 'wikiracer compare',
most recent first. With --id it prints the full report of a single race,
including its fetch log.

Examples:
  # List the last 20 races
  wikiracer history

  # List best-first races between two pages
  wikiracer history --strategy best --source Calvin_Li --goal Wikipedia

  # Show one race in JSON
  wikiracer history --id 0b6c9f3e-... --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of races to list (0 lists all)")
	cmd.Flags().StringP("strategy", "s", "",
		"Only list races of this strategy")
	cmd.Flags().String("source", "",
		"Only list races from this page")
	cmd.Flags().String("goal", "",
		"Only list races to this page")
	cmd.Flags().String("id", "",
		"Print the full report of the race with this ID")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format")
	addStoreFlags(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, nil)
	if err != nil {
		return err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}

	filter, err := historyFilter(cmd)
	if err != nil {
		return err
	}
	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	return runHistory(cmd.Context(), cfg, filter, id, cmd.OutOrStdout())
}

// historyFilter builds the race filter from the command flags.
func historyFilter(cmd *cobra.Command) (database.RaceFilter, error) {
	var filter database.RaceFilter
	var err error

	filter.Limit, err = cmd.Flags().GetInt("limit")
	if err != nil {
		return filter, err
	}
	filter.Strategy, err = cmd.Flags().GetString("strategy")
	if err != nil {
		return filter, err
	}

	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return filter, err
	}
	goal, err := cmd.Flags().GetString("goal")
	if err != nil {
		return filter, err
	}
	filter.Source = model.NormalizePageID(source)
	filter.Goal = model.NormalizePageID(goal)

	return filter, nil
}

// runHistory prints saved races, or the single race id when it is set.
func runHistory(ctx context.Context, cfg *config.Config, filter database.RaceFilter, id string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	store, err := database.Open(cfg.DBDir, opts)
	if errors.Is(err, database.ErrDatabaseNotFound) {
		if id != "" {
			return fmt.Errorf("race not found: %s", id)
		}
		return outputReport(cfg, stdout, func(w reportWriter) error {
			_, err := w.WriteHistory(nil)
			return err
		})
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if id != "" {
		raceReport, err := store.GetRace(ctx, id)
		if err != nil {
			return err
		}
		if raceReport == nil {
			return fmt.Errorf("race not found: %s", id)
		}
		return outputReport(cfg, stdout, func(w reportWriter) error {
			_, err := w.Write(raceReport)
			return err
		})
	}

	races, err := store.ListRaces(ctx, filter)
	if err != nil {
		return err
	}
	return outputReport(cfg, stdout, func(w reportWriter) error {
		_, err := w.WriteHistory(races)
		return err
	})
}
