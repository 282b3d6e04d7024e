package racer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/search"
	"golang.org/x/sync/errgroup"
)

// StrategyRacer is the name of the default strategy: best-first search.
const StrategyRacer = "racer"

// DefaultConcurrency is the number of searches Compare runs at once.
const DefaultConcurrency = 4

// StrategyNames returns every strategy name Race accepts, StrategyRacer first.
func StrategyNames() []string {
	return append([]string{StrategyRacer}, search.Names()...)
}

// Racer runs searches, each against a fresh source from its factory.
type Racer struct {
	factory     corpus.Factory
	concurrency int
	logger      *slog.Logger
	searchOpts  []search.Option
}

// Option configures a Racer.
type Option func(*Racer)

// WithLogger sets the logger for the racer and the searches it runs.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Racer) {
		r.logger = logger
	}
}

// WithConcurrency sets how many searches Compare runs at once.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(r *Racer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithSearchOptions passes options to every search the racer builds.
func WithSearchOptions(opts ...search.Option) Option {
	return func(r *Racer) {
		r.searchOpts = append(r.searchOpts, opts...)
	}
}

// New creates a Racer. factory is called once per search.
func New(factory corpus.Factory, opts ...Option) *Racer {
	r := &Racer{
		factory:     factory,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// FindPath returns a path from source to goal using best-first search over a
// fresh source.
func (r *Racer) FindPath(ctx context.Context, source, goal model.PageID) (model.Path, error) {
	return search.NewBestFirst(r.factory(), r.options()...).Search(ctx, source, goal)
}

// Race runs the named strategy against a fresh source and reports the outcome.
//
// Not finding a path is a normal outcome: the report has Found set to false
// and the error is nil. Any other search failure is recorded in the report
// and also returned. An unknown strategy yields a nil report.
func (r *Racer) Race(ctx context.Context, strategy string, source, goal model.PageID) (*model.RaceReport, error) {
	rec := r.factory()
	s, err := r.build(strategy, rec)
	if err != nil {
		return nil, err
	}

	report := model.NewRaceReport(strategy, source, goal)
	r.logger.Info("race started",
		"id", report.ID,
		"strategy", strategy,
		"source", source.String(),
		"goal", goal.String(),
	)

	path, err := s.Search(ctx, source, goal)
	report.Finish(path, rec.Requests(), err)

	r.logger.Info("race finished",
		"id", report.ID,
		"strategy", strategy,
		"found", report.Found,
		"fetches", report.FetchCount(),
		"elapsed", report.Duration.String(),
	)

	if err != nil && !errors.Is(err, search.ErrNoPath) {
		return report, fmt.Errorf("%s race from %s to %s: %w", strategy, source, goal, err)
	}
	return report, nil
}

// Compare runs every named strategy between the same pages and returns their
// reports in the order of strategies.
//
// A failing search does not stop the others; its failure is recorded in its
// report. The returned error is non-nil only when a strategy name is unknown
// or ctx is cancelled.
func (r *Racer) Compare(ctx context.Context, strategies []string, source, goal model.PageID) ([]*model.RaceReport, error) {
	known := StrategyNames()
	for _, name := range strategies {
		if !slices.Contains(known, name) {
			return nil, fmt.Errorf("%w: %q", search.ErrUnknownStrategy, name)
		}
	}

	r.logger.Info("starting comparison",
		"strategies", len(strategies),
		"concurrency", r.concurrency,
	)
	startTime := time.Now()

	reports := make([]*model.RaceReport, len(strategies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, name := range strategies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			report, err := r.Race(gctx, name, source, goal)
			// Each goroutine owns its slot.
			reports[i] = report
			if err != nil {
				r.logger.Warn("race failed",
					"strategy", name,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	r.logger.Info("comparison complete",
		"strategies", len(strategies),
		"elapsed", time.Since(startTime).String(),
	)
	return reports, err
}

func (r *Racer) build(strategy string, src corpus.Source) (search.Strategy, error) {
	if strategy == StrategyRacer {
		return search.NewBestFirst(src, r.options()...), nil
	}
	return search.New(strategy, src, r.options()...)
}

func (r *Racer) options() []search.Option {
	opts := make([]search.Option, 0, len(r.searchOpts)+1)
	opts = append(opts, search.WithLogger(r.logger))
	return append(opts, r.searchOpts...)
}
