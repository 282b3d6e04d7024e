package search

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/parser"
)

// Strategy names accepted by New.
const (
	NameBFS       = "bfs"
	NameDFS       = "dfs"
	NameUCS       = "ucs"
	NameBestFirst = "best"
)

// DefaultTimeBudget is the wall-clock budget of a depth-first search.
const DefaultTimeBudget = 100 * time.Second

// Strategy finds a path between two pages.
type Strategy interface {
	// Name returns the strategy name used in reports.
	Name() string
	// Search returns a path from source to goal, or ErrNoPath.
	Search(ctx context.Context, source, goal model.PageID) (model.Path, error)
}

// Names returns every strategy name in a stable order.
func Names() []string {
	return []string{NameBFS, NameDFS, NameUCS, NameBestFirst}
}

// New creates the named strategy over src.
func New(name string, src corpus.Source, opts ...Option) (Strategy, error) {
	switch name {
	case NameBFS:
		return NewBFS(src, opts...), nil
	case NameDFS:
		return NewDFS(src, opts...), nil
	case NameUCS:
		return NewUCS(src, opts...), nil
	case NameBestFirst:
		return NewBestFirst(src, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Option configures a strategy.
// Options that do not apply to a strategy are ignored by it.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	timeBudget time.Duration
	cost       CostFunc
	heuristic  HeuristicFunc
	now        func() time.Time
}

func defaultOptions() options {
	return options{
		logger:     slog.Default(),
		timeBudget: DefaultTimeBudget,
		cost:       DefaultCost,
		heuristic:  DefaultHeuristic,
		now:        time.Now,
	}
}

// WithLogger sets the logger used for per-expansion debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeBudget sets the wall-clock budget of a depth-first search.
// Non-positive values keep DefaultTimeBudget.
func WithTimeBudget(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeBudget = d
		}
	}
}

// WithCostFunc replaces the edge cost of a uniform-cost search.
func WithCostFunc(fn CostFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.cost = fn
		}
	}
}

// WithHeuristic replaces the score of a best-first search.
func WithHeuristic(fn HeuristicFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.heuristic = fn
		}
	}
}

// engine holds what every strategy needs to expand a page.
type engine struct {
	name      string
	source    corpus.Source
	extractor *parser.Extractor
	opts      options
}

func newEngine(name string, src corpus.Source, opts []Option) engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return engine{
		name:      name,
		source:    src,
		extractor: parser.NewExtractor(src.Disallowed()),
		opts:      o,
	}
}

// Name returns the strategy name.
func (e *engine) Name() string {
	return e.name
}

// expand fetches page and returns its links. fetches is the number of
// fetches made by the current search, including this one.
func (e *engine) expand(ctx context.Context, page model.PageID, fetches int) ([]model.PageID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := e.source.Fetch(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch %s: %w", e.name, page, err)
	}

	links := e.extractor.ExtractLinks(content)
	e.opts.logger.Debug("expanded page",
		"strategy", e.name,
		"page", page.String(),
		"links", len(links),
		"fetches", fetches,
	)
	return links, nil
}

// samePage handles a search whose source is its goal: the page is fetched
// once and the two-element path is returned.
func (e *engine) samePage(ctx context.Context, page model.PageID) (model.Path, error) {
	if _, err := e.expand(ctx, page, 1); err != nil {
		return nil, err
	}
	return model.Path{page, page}, nil
}

// reconstruct walks the parent map back from goal to source.
func reconstruct(parent map[model.PageID]model.PageID, source, goal model.PageID) model.Path {
	path := model.Path{goal}
	for current := goal; current != source; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
