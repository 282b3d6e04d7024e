package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/nao1215/wikiracer/internal/config"
	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/log"
)

// errEmptyDBCorpus is returned by --corpus-db when nothing was imported yet.
var errEmptyDBCorpus = errors.New("no pages in the database (run 'wikiracer import <dir>' first)")

// openStore opens the database when races are saved or pages are read from it.
// It returns nil when neither is needed.
func openStore(cfg *config.Config, logger *slog.Logger) (*database.Store, error) {
	if !cfg.SaveToDB && !cfg.CorpusDB {
		return nil, nil
	}

	store, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("database opened", "path", store.Path())
	return store, nil
}

// openCorpus builds the page source selected by cfg, wrapped in a page cache
// when cfg.CacheSize is positive.
func openCorpus(ctx context.Context, cfg *config.Config, store *database.Store, logger *slog.Logger) (corpus.Source, error) {
	var src corpus.Source

	switch {
	case cfg.CorpusDir != "":
		info, err := os.Stat(cfg.CorpusDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open corpus directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("corpus path is not a directory: %s", cfg.CorpusDir)
		}
		dir := corpus.NewDirSource(cfg.CorpusDir)
		dir.SetDisallowed(cfg.DisallowedChars)
		src = dir
		logger.Info("using directory corpus", "dir", cfg.CorpusDir)

	case cfg.CorpusDB:
		if store == nil {
			return nil, errors.New("database corpus requires an open database")
		}
		n, err := store.CountPages(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errEmptyDBCorpus
		}
		db := corpus.NewDBSource(store)
		db.SetDisallowed(cfg.DisallowedChars)
		src = db
		logger.Info("using database corpus", "pages", n)

	case cfg.BaseURL != "":
		httpSrc, err := corpus.NewHTTPSource(cfg.BaseURL,
			corpus.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
			corpus.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
			corpus.WithUserAgent(cfg.UserAgent),
			corpus.WithHeaders(cfg.Headers),
			corpus.WithMaxBodySize(cfg.MaxBodySize),
		)
		if err != nil {
			return nil, err
		}
		httpSrc.SetDisallowed(cfg.DisallowedChars)
		src = httpSrc
		logger.Info("using HTTP corpus",
			"baseURL", cfg.BaseURL,
			"rateLimit", cfg.RateLimit,
			log.Headers(cfg.Headers),
		)

	default:
		return nil, config.ErrNoCorpus
	}

	if cfg.CacheSize > 0 {
		cached, err := corpus.NewCachedSource(src, cfg.CacheSize)
		if err != nil {
			return nil, err
		}
		src = cached
	}
	return src, nil
}
