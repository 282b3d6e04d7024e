package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
	"github.com/nao1215/wikiracer/internal/parser"
)

// Defaults for NewSpider.
const (
	// DefaultMaxDepth crawls the seed, its links and their links.
	DefaultMaxDepth = 2

	// DefaultMaxPages bounds the number of fetches of a crawl.
	DefaultMaxPages = 500
)

// ErrEmptySeed is returned by Crawl when no seed page is given.
var ErrEmptySeed = errors.New("seed page must not be empty")

// PageFunc receives every page a crawl fetched. Returning an error stops the
// crawl.
type PageFunc func(ctx context.Context, id model.PageID, content string) error

// Spider crawls the link graph of a corpus.Source.
// It is safe to run several crawls with the same Spider; crawl state is
// created per call.
type Spider struct {
	// source serves the pages.
	source corpus.Source

	// extractor finds the links of a page.
	extractor *parser.Extractor

	// maxDepth limits how many links away from the seed to crawl.
	// 0 means only the seed page, 1 means the seed and its links, etc.
	maxDepth int

	// maxPages limits the total number of pages fetched.
	maxPages int

	// ignorePatterns are glob patterns on page names to skip.
	ignorePatterns []string

	// followPatterns are glob patterns on page names to crawl.
	// Empty means every page not ignored.
	followPatterns []string

	logger *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth. Negative values are ignored.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		if depth >= 0 {
			s.maxDepth = depth
		}
	}
}

// WithMaxPages sets the maximum number of pages to fetch.
// Non-positive values are ignored.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		if maxPages > 0 {
			s.maxPages = maxPages
		}
	}
}

// WithIgnorePatterns sets page name patterns to skip, e.g. "List_of_*".
// The seed page is always fetched.
func WithIgnorePatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.ignorePatterns = patterns
	}
}

// WithFollowPatterns restricts the crawl to pages whose names match at least
// one pattern.
func WithFollowPatterns(patterns []string) SpiderOption {
	return func(s *Spider) {
		s.followPatterns = patterns
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider reading from source.
func NewSpider(source corpus.Source, opts ...SpiderOption) *Spider {
	s := &Spider{
		source:    source,
		extractor: parser.NewExtractor(source.Disallowed()),
		maxDepth:  DefaultMaxDepth,
		maxPages:  DefaultMaxPages,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Stats contains crawl statistics.
type Stats struct {
	// Fetched is the number of pages requested from the source.
	Fetched int

	// Stored is the number of pages handed to the PageFunc.
	Stored int

	// Missing is the number of pages the source did not know.
	Missing int

	// Failed is the number of fetches that returned an error.
	Failed int

	// Discovered is the number of distinct pages seen, fetched or not.
	Discovered int
}

// queueItem represents an item in the crawl queue.
type queueItem struct {
	id    model.PageID
	depth int
}

// Crawl fetches pages breadth-first from seed and calls fn for each page the
// source knows. Pages missing from the source are counted, not stored.
//
// A failed fetch is logged and skipped. Cancellation stops the crawl and
// returns ctx.Err() with the statistics so far.
func (s *Spider) Crawl(ctx context.Context, seed model.PageID, fn PageFunc) (Stats, error) {
	var stats Stats
	if seed == "" {
		return stats, ErrEmptySeed
	}

	visited := map[model.PageID]bool{seed: true}
	queue := []queueItem{{id: seed}}
	stats.Discovered = 1

	for len(queue) > 0 && stats.Fetched < s.maxPages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		item := queue[0]
		queue = queue[1:]

		stats.Fetched++
		content, err := s.source.Fetch(ctx, item.id)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Failed++
			s.logger.Warn("failed to fetch page", "page", item.id.String(), "error", err)
			continue
		}
		if content == corpus.Placeholder {
			stats.Missing++
			continue
		}

		if err := fn(ctx, item.id, content); err != nil {
			return stats, fmt.Errorf("failed to store page %s: %w", item.id, err)
		}
		stats.Stored++

		if item.depth >= s.maxDepth {
			continue
		}
		added := 0
		for _, link := range s.extractor.ExtractLinks(content) {
			if visited[link] || !s.shouldCrawl(link) {
				continue
			}
			visited[link] = true
			queue = append(queue, queueItem{id: link, depth: item.depth + 1})
			added++
		}
		stats.Discovered += added

		s.logger.Debug("crawled page",
			"page", item.id.String(),
			"depth", item.depth,
			"newLinks", added,
			"queued", len(queue),
		)
	}

	return stats, nil
}

// shouldCrawl checks a page against the ignore and follow patterns.
//
// Logic:
//  1. If the page matches any ignore pattern, skip it
//  2. If follow patterns are set and the page matches none, skip it
//  3. Otherwise, crawl it
func (s *Spider) shouldCrawl(id model.PageID) bool {
	name := id.Token()

	for _, pattern := range s.ignorePatterns {
		if matchPattern(pattern, name) {
			return false
		}
	}

	if len(s.followPatterns) == 0 {
		return true
	}
	for _, pattern := range s.followPatterns {
		if matchPattern(pattern, name) {
			return true
		}
	}
	return false
}

// matchPattern reports whether a page name matches a glob pattern.
// Patterns use path.Match syntax and are case-sensitive, like page names;
// a pattern may also be given with the "/wiki/" prefix.
//
// Examples:
//   - "List_of_*" matches "List_of_Chinese_actors"
//   - "*_(disambiguation)" matches "Li_(disambiguation)"
//   - "Calvin_?i" matches "Calvin_Li"
func matchPattern(pattern, name string) bool {
	pattern = strings.TrimPrefix(pattern, model.WikiPrefix)
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}
