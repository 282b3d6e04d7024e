package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/parser"
	"github.com/spf13/cobra"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import a directory of pages into the database corpus",
		Long: `Import loads every <page>.html file of a directory into the local database,
so that later races can use --corpus-db.

File names are page names: "Calvin_Li.html" becomes /wiki/Calvin_Li. Other
files are skipped. Importing the same directory again only updates pages
whose content changed.

Examples:
  # Import a snapshot of pages
  wikiracer import ./pages

  # Import into a specific database directory
  wikiracer import --db-dir /tmp/wikiracer ./pages`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCmd,
	}

	addStoreFlags(cmd)

	return cmd
}

// importStats counts the outcome of an import.
type importStats struct {
	// Pages is the number of page files read.
	Pages int

	// Changed is the number of pages that were new or had new content.
	Changed int
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	store, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	stats, err := importPages(ctx, store, args[0], logger)
	if err != nil {
		return err
	}

	return printImportStats(ctx, cmd.OutOrStdout(), store, stats)
}

// importPages stores every page file of dir.
func importPages(ctx context.Context, store *database.Store, dir string, logger *slog.Logger) (importStats, error) {
	var stats importStats

	err := corpus.WalkDir(ctx, dir, func(id model.PageID, content string) error {
		stats.Pages++
		changed, err := store.PutPage(ctx, &database.PageRecord{
			ID:      id,
			Title:   parser.Title(content),
			Content: content,
		})
		if err != nil {
			return err
		}
		if changed {
			stats.Changed++
		}
		logger.Debug("imported page", "page", id.String(), "changed", changed)
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("import stopped after %d pages: %w", stats.Pages, err)
	}

	return stats, nil
}

// printImportStats prints what an import did and how large the corpus is now.
func printImportStats(ctx context.Context, w io.Writer, store *database.Store, stats importStats) error {
	total, err := store.CountPages(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Imported %d pages (%d new or changed) into %s\n", stats.Pages, stats.Changed, store.Path())
	fmt.Fprintf(w, "The database corpus now holds %d pages.\n", total)
	return nil
}
