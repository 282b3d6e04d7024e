package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/crawler"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/parser"
	"github.com/spf13/cobra"
)

// NewSnapshotCmd creates the snapshot command.
func NewSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot <seed>",
		Short: "Copy the neighbourhood of a page into a local corpus",
		Long: `Snapshot crawls the link graph breadth-first from a seed page and stores
every page it fetches, so that later races run without the network.

Pages are stored in the database corpus (use 'race --corpus-db'), or as
<page>.html files with --out-dir (use 'race --corpus-dir'). Requests to a
page server honour --rate-limit.

Examples:
  # Copy pages up to two links away from Calvin_Li into the database
  wikiracer snapshot Calvin_Li --base-url http://127.0.0.1:8000

  # Copy at most 50 pages, skipping list pages, into a directory
  wikiracer snapshot Calvin_Li -u http://127.0.0.1:8000 --max-pages 50 \
    --ignore 'List_of_*' --out-dir ./pages`,
		Args: cobra.ExactArgs(1),
		RunE: runSnapshotCmd,
	}

	cmd.Flags().Int("depth", crawler.DefaultMaxDepth,
		"Maximum number of links away from the seed")
	cmd.Flags().Int("max-pages", crawler.DefaultMaxPages,
		"Maximum number of pages to fetch")
	cmd.Flags().StringSlice("ignore", nil,
		"Page name patterns to skip (e.g., 'List_of_*')")
	cmd.Flags().StringSlice("follow", nil,
		"Only crawl pages whose names match one of these patterns")
	cmd.Flags().String("out-dir", "",
		"Write <page>.html files to this directory instead of the database")
	addCorpusFlags(cmd)

	return cmd
}

// runSnapshotCmd executes the snapshot command.
func runSnapshotCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateCorpus(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	depth, err := flags.GetInt("depth")
	if err != nil {
		return err
	}
	maxPages, err := flags.GetInt("max-pages")
	if err != nil {
		return err
	}
	ignore, err := flags.GetStringSlice("ignore")
	if err != nil {
		return err
	}
	follow, err := flags.GetStringSlice("follow")
	if err != nil {
		return err
	}
	outDir, err := flags.GetString("out-dir")
	if err != nil {
		return err
	}

	if cfg.CorpusDB && outDir == "" {
		return errors.New("snapshot of the database corpus needs --out-dir")
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	// The database is only needed as source or destination.
	cfg.SaveToDB = outDir == ""
	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	// Each page is fetched once per crawl; a cache would only hold memory.
	cfg.CacheSize = 0
	src, err := openCorpus(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	var sink crawler.PageFunc
	if outDir != "" {
		sink, err = dirSink(outDir, logger)
		if err != nil {
			return err
		}
	} else {
		sink = storeSink(store)
	}

	spider := crawler.NewSpider(src,
		crawler.WithMaxDepth(depth),
		crawler.WithMaxPages(maxPages),
		crawler.WithIgnorePatterns(ignore),
		crawler.WithFollowPatterns(follow),
		crawler.WithLogger(logger),
	)

	seed := model.NormalizePageID(args[0])
	stats, crawlErr := spider.Crawl(ctx, seed, sink)
	printSnapshotStats(cmd.OutOrStdout(), seed, stats, outDir)
	return crawlErr
}

// storeSink stores crawled pages in the database corpus.
func storeSink(store *database.Store) crawler.PageFunc {
	return func(ctx context.Context, id model.PageID, content string) error {
		_, err := store.PutPage(ctx, &database.PageRecord{
			ID:      id,
			Title:   parser.Title(content),
			Content: content,
		})
		return err
	}
}

// dirSink writes crawled pages as files that DirSource reads back.
func dirSink(dir string, logger *slog.Logger) (crawler.PageFunc, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return func(_ context.Context, id model.PageID, content string) error {
		name, ok := corpus.FileName(id)
		if !ok {
			logger.Debug("skipping page without a file name", "page", id.String())
			return nil
		}
		return os.WriteFile(filepath.Join(dir, name), []byte(content), 0600)
	}, nil
}

func printSnapshotStats(w io.Writer, seed model.PageID, stats crawler.Stats, outDir string) {
	dest := "the database corpus"
	if outDir != "" {
		dest = outDir
	}
	fmt.Fprintf(w, "Crawled %d pages from %s into %s\n", stats.Fetched, seed, dest)
	fmt.Fprintf(w, "  stored:     %d\n", stats.Stored)
	fmt.Fprintf(w, "  missing:    %d\n", stats.Missing)
	fmt.Fprintf(w, "  failed:     %d\n", stats.Failed)
	fmt.Fprintf(w, "  discovered: %d\n", stats.Discovered)
}
