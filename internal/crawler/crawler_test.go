package crawler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// newSource builds an in-memory corpus from page names to linked page names.
func newSource(links map[string][]string) *corpus.MemorySource {
	pages := make(map[model.PageID]string, len(links))
	for page, targets := range links {
		var sb strings.Builder
		sb.WriteString("<html><body>")
		for _, target := range targets {
			fmt.Fprintf(&sb, `<a href="/wiki/%s">%s</a>`, target, target)
		}
		sb.WriteString("</body></html>")
		pages[model.PageID("/wiki/"+page)] = sb.String()
	}
	return corpus.NewMemorySource(pages)
}

// collect returns a PageFunc that records page names in order.
func collect(names *[]string) PageFunc {
	return func(_ context.Context, id model.PageID, _ string) error {
		*names = append(*names, id.Token())
		return nil
	}
}

var treeGraph = map[string][]string{
	"A": {"B", "C"},
	"B": {"D", "A"},
	"C": {"E", "B"},
	"D": {"F"},
	"E": {},
	"F": {},
}

// TestSpider tests crawling an in-memory corpus.
func TestSpider(t *testing.T) {
	t.Parallel()

	t.Run("crawls breadth-first within the depth limit", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			depth int
			want  []string
		}{
			{0, []string{"A"}},
			{1, []string{"A", "B", "C"}},
			{2, []string{"A", "B", "C", "D", "E"}},
			{3, []string{"A", "B", "C", "D", "E", "F"}},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("depth %d", tt.depth), func(t *testing.T) {
				t.Parallel()

				var got []string
				spider := NewSpider(newSource(treeGraph), WithMaxDepth(tt.depth))
				stats, err := spider.Crawl(context.Background(), "/wiki/A", collect(&got))
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !slices.Equal(got, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
				if stats.Stored != len(tt.want) || stats.Fetched != len(tt.want) {
					t.Errorf("unexpected stats: %+v", stats)
				}
			})
		}
	})

	t.Run("stops at max pages", func(t *testing.T) {
		t.Parallel()

		var got []string
		spider := NewSpider(newSource(treeGraph), WithMaxDepth(5), WithMaxPages(2))
		stats, err := spider.Crawl(context.Background(), "/wiki/A", collect(&got))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Fetched != 2 || !slices.Equal(got, []string{"A", "B"}) {
			t.Errorf("expected two fetches of A and B, got %v (%+v)", got, stats)
		}
	})

	t.Run("counts missing pages without storing them", func(t *testing.T) {
		t.Parallel()

		var got []string
		spider := NewSpider(newSource(map[string][]string{"A": {"Missing"}}))
		stats, err := spider.Crawl(context.Background(), "/wiki/A", collect(&got))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Missing != 1 || stats.Stored != 1 || stats.Discovered != 2 {
			t.Errorf("unexpected stats: %+v", stats)
		}
		if !slices.Equal(got, []string{"A"}) {
			t.Errorf("expected only A stored, got %v", got)
		}
	})

	t.Run("ignore and follow patterns", func(t *testing.T) {
		t.Parallel()

		graph := map[string][]string{
			"Seed":                {"List_of_things", "Li_(disambiguation)", "Calvin_Li", "Jet_Li"},
			"List_of_things":      {},
			"Li_(disambiguation)": {},
			"Calvin_Li":           {},
			"Jet_Li":              {},
		}

		var ignored []string
		spider := NewSpider(newSource(graph),
			WithIgnorePatterns([]string{"List_of_*", "/wiki/*_(disambiguation)"}))
		if _, err := spider.Crawl(context.Background(), "/wiki/Seed", collect(&ignored)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"Seed", "Calvin_Li", "Jet_Li"}; !slices.Equal(ignored, want) {
			t.Errorf("expected %v, got %v", want, ignored)
		}

		var followed []string
		spider = NewSpider(newSource(graph), WithFollowPatterns([]string{"Calvin_*"}))
		if _, err := spider.Crawl(context.Background(), "/wiki/Seed", collect(&followed)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []string{"Seed", "Calvin_Li"}; !slices.Equal(followed, want) {
			t.Errorf("expected %v, got %v", want, followed)
		}
	})

	t.Run("skips failed fetches", func(t *testing.T) {
		t.Parallel()

		mem := newSource(treeGraph)
		src := corpus.SourceFunc(func(ctx context.Context, id model.PageID) (string, error) {
			if id == "/wiki/B" {
				return "", errors.New("connection reset")
			}
			return mem.Fetch(ctx, id)
		})

		var got []string
		stats, err := NewSpider(src).Crawl(context.Background(), "/wiki/A", collect(&got))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Failed != 1 {
			t.Errorf("expected 1 failed fetch, got %d", stats.Failed)
		}
		if want := []string{"A", "C", "E"}; !slices.Equal(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("page func error stops the crawl", func(t *testing.T) {
		t.Parallel()

		errFull := errors.New("disk full")
		stats, err := NewSpider(newSource(treeGraph)).Crawl(context.Background(), "/wiki/A",
			func(context.Context, model.PageID, string) error { return errFull })
		if !errors.Is(err, errFull) {
			t.Errorf("expected errFull, got %v", err)
		}
		if stats.Fetched != 1 {
			t.Errorf("expected the crawl to stop after one fetch, got %d", stats.Fetched)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stats, err := NewSpider(newSource(treeGraph)).Crawl(ctx, "/wiki/A", collect(new([]string)))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if stats.Fetched != 0 {
			t.Errorf("expected no fetches, got %d", stats.Fetched)
		}
	})

	t.Run("empty seed", func(t *testing.T) {
		t.Parallel()

		_, err := NewSpider(newSource(treeGraph)).Crawl(context.Background(), "", collect(new([]string)))
		if !errors.Is(err, ErrEmptySeed) {
			t.Errorf("expected ErrEmptySeed, got %v", err)
		}
	})
}

// TestSpiderOptions tests option defaults and validation.
func TestSpiderOptions(t *testing.T) {
	t.Parallel()

	s := NewSpider(newSource(nil))
	if s.maxDepth != DefaultMaxDepth || s.maxPages != DefaultMaxPages {
		t.Errorf("unexpected defaults: depth=%d pages=%d", s.maxDepth, s.maxPages)
	}
	if s.logger == nil {
		t.Error("expected a default logger")
	}

	s = NewSpider(newSource(nil), WithMaxDepth(-1), WithMaxPages(0))
	if s.maxDepth != DefaultMaxDepth || s.maxPages != DefaultMaxPages {
		t.Errorf("invalid values must be ignored: depth=%d pages=%d", s.maxDepth, s.maxPages)
	}
}

// TestMatchPattern tests glob matching on page names.
func TestMatchPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		page    string
		want    bool
	}{
		{"prefix", "List_of_*", "List_of_Chinese_actors", true},
		{"prefix no match", "List_of_*", "Lists", false},
		{"suffix", "*_(disambiguation)", "Li_(disambiguation)", true},
		{"single character", "Calvin_?i", "Calvin_Li", true},
		{"exact", "Wikipedia", "Wikipedia", true},
		{"case sensitive", "wikipedia", "Wikipedia", false},
		{"wiki prefix", "/wiki/Calvin_*", "Calvin_Klein", true},
		{"malformed pattern", "[", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := matchPattern(tt.pattern, tt.page); got != tt.want {
				t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.page, got, tt.want)
			}
		})
	}
}
