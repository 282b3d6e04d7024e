package corpus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nao1215/wikiracer/internal/database"
	"github.com/nao1215/wikiracer/internal/model"
)

func TestRecorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("logs fetches in order", func(t *testing.T) {
		t.Parallel()

		rec := NewRecorder(NewMemorySource(map[model.PageID]string{
			"/wiki/A": `<a href="/wiki/B"></a>`,
		}))

		for _, id := range []model.PageID{"/wiki/A", "/wiki/Unknown", "/wiki/A"} {
			if _, err := rec.Fetch(ctx, id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		want := []model.PageID{"/wiki/A", "/wiki/Unknown", "/wiki/A"}
		if got := rec.Requests(); !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if rec.Count() != 3 {
			t.Errorf("expected count 3, got %d", rec.Count())
		}
	})

	t.Run("logs failed fetches", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		rec := NewRecorder(SourceFunc(func(context.Context, model.PageID) (string, error) {
			return "", boom
		}))

		if _, err := rec.Fetch(ctx, "/wiki/A"); !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if rec.Count() != 1 {
			t.Errorf("expected failed fetch to be logged, got %d", rec.Count())
		}
	})

	t.Run("requests returns a copy", func(t *testing.T) {
		t.Parallel()

		rec := NewRecorder(NewMemorySource(nil))
		if _, err := rec.Fetch(ctx, "/wiki/A"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := rec.Requests()
		got[0] = "/wiki/Mutated"
		if rec.Requests()[0] != "/wiki/A" {
			t.Error("mutating the returned slice changed the log")
		}
	})

	t.Run("factory returns independent recorders", func(t *testing.T) {
		t.Parallel()

		factory := NewFactory(NewMemorySource(nil))
		a, b := factory(), factory()
		if _, err := a.Fetch(ctx, "/wiki/A"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if b.Count() != 0 {
			t.Errorf("expected independent logs, got %d", b.Count())
		}
	})

	t.Run("delegates disallowed set", func(t *testing.T) {
		t.Parallel()

		src := NewMemorySource(nil)
		src.SetDisallowed(":")
		if got := NewRecorder(src).Disallowed(); got != ":" {
			t.Errorf("expected ':', got %q", got)
		}
	})
}

func TestMemorySource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := NewMemorySource(map[model.PageID]string{"/wiki/A": "a"})
	src.Set("/wiki/B", "b")

	if src.Len() != 2 {
		t.Errorf("expected 2 pages, got %d", src.Len())
	}
	if src.Disallowed() != DefaultDisallowed {
		t.Errorf("unexpected disallowed set %q", src.Disallowed())
	}

	got, err := src.Fetch(ctx, "/wiki/B")
	if err != nil || got != "b" {
		t.Errorf("Fetch(B) = %q, %v", got, err)
	}

	got, err = src.Fetch(ctx, "/wiki/Missing")
	if err != nil || got != Placeholder {
		t.Errorf("Fetch(Missing) = %q, %v", got, err)
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := src.Fetch(cctx, "/wiki/A"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestDirSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Calvin_Li.html"), []byte(`<a href="/wiki/Weibo"></a>`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}

	src := NewDirSource(dir)
	if src.Dir() != dir {
		t.Errorf("unexpected dir %q", src.Dir())
	}

	t.Run("reads page file", func(t *testing.T) {
		t.Parallel()
		got, err := src.Fetch(ctx, "/wiki/Calvin_Li")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `<a href="/wiki/Weibo"></a>` {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("missing page yields placeholder", func(t *testing.T) {
		t.Parallel()
		got, err := src.Fetch(ctx, "/wiki/Nowhere")
		if err != nil || got != Placeholder {
			t.Errorf("Fetch = %q, %v", got, err)
		}
	})

	t.Run("path escapes yield placeholder", func(t *testing.T) {
		t.Parallel()
		for _, id := range []model.PageID{"/wiki/../secret", "/wiki/a/b", "/etc/passwd", "/wiki/.hidden"} {
			got, err := src.Fetch(ctx, id)
			if err != nil || got != Placeholder {
				t.Errorf("Fetch(%q) = %q, %v", id, got, err)
			}
		}
	})

	t.Run("walk visits only page files", func(t *testing.T) {
		t.Parallel()
		var seen []model.PageID
		err := WalkDir(ctx, dir, func(id model.PageID, _ string) error {
			seen = append(seen, id)
			return nil
		})
		if err != nil {
			t.Fatalf("WalkDir failed: %v", err)
		}
		if !slices.Equal(seen, []model.PageID{"/wiki/Calvin_Li"}) {
			t.Errorf("unexpected pages %v", seen)
		}
	})

	t.Run("walk propagates callback errors", func(t *testing.T) {
		t.Parallel()
		stop := errors.New("stop")
		err := WalkDir(ctx, dir, func(model.PageID, string) error { return stop })
		if !errors.Is(err, stop) {
			t.Errorf("expected stop, got %v", err)
		}
	})
}

func TestFileNameRoundTrip(t *testing.T) {
	t.Parallel()

	name, ok := FileName("/wiki/Scott_Derrickson%27s_unrealized_projects")
	if !ok {
		t.Fatal("expected a file name")
	}
	id, ok := PageIDFromFile(name)
	if !ok || id != "/wiki/Scott_Derrickson%27s_unrealized_projects" {
		t.Errorf("round trip produced %q, %v", id, ok)
	}

	if _, ok := PageIDFromFile("README.md"); ok {
		t.Error("expected non-html file to be rejected")
	}
	if _, ok := PageIDFromFile(".html"); ok {
		t.Error("expected empty token to be rejected")
	}
}

func TestDBSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := database.Open(t.TempDir(), database.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.PutPage(ctx, &database.PageRecord{ID: "/wiki/A", Content: "stored"}); err != nil {
		t.Fatalf("PutPage failed: %v", err)
	}

	src := NewDBSource(store)

	got, err := src.Fetch(ctx, "/wiki/A")
	if err != nil || got != "stored" {
		t.Errorf("Fetch(A) = %q, %v", got, err)
	}

	got, err = src.Fetch(ctx, "/wiki/B")
	if err != nil || got != Placeholder {
		t.Errorf("Fetch(B) = %q, %v", got, err)
	}
}

func TestHTTPSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wiki/Potato":
			if r.Header.Get("Cookie") != "session=abc" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			fmt.Fprint(w, `<a href="/wiki/Potato_chip"></a>`)
		case "/wiki/Broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	src, err := NewHTTPSource(server.URL+"/",
		WithHTTPClient(server.Client()),
		WithRateLimit(0, 0),
		WithHeaders(map[string]string{"Cookie": "session=abc"}),
		WithUserAgent("test-agent"),
		WithMaxBodySize(1024),
	)
	if err != nil {
		t.Fatalf("NewHTTPSource failed: %v", err)
	}

	t.Run("fetches page", func(t *testing.T) {
		t.Parallel()
		got, err := src.Fetch(ctx, "/wiki/Potato")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "/wiki/Potato_chip") {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("404 yields placeholder", func(t *testing.T) {
		t.Parallel()
		got, err := src.Fetch(ctx, "/wiki/Nowhere")
		if err != nil || got != Placeholder {
			t.Errorf("Fetch = %q, %v", got, err)
		}
	})

	t.Run("server error is returned", func(t *testing.T) {
		t.Parallel()
		if _, err := src.Fetch(ctx, "/wiki/Broken"); !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("expected ErrUnexpectedStatus, got %v", err)
		}
	})

	t.Run("invalid base urls", func(t *testing.T) {
		t.Parallel()
		for _, base := range []string{"ftp://example.com", "http://", "::bad"} {
			if _, err := NewHTTPSource(base); !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("NewHTTPSource(%q): expected ErrInvalidBaseURL, got %v", base, err)
			}
		}
	})
}

// countingSource counts calls to the inner source.
type countingSource struct {
	calls atomic.Int32
	inner Source
}

func (c *countingSource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	c.calls.Add(1)
	return c.inner.Fetch(ctx, id)
}

func (c *countingSource) Disallowed() string {
	return c.inner.Disallowed()
}

func TestCachedSource(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("serves repeated fetches from cache", func(t *testing.T) {
		t.Parallel()

		counter := &countingSource{inner: NewMemorySource(map[model.PageID]string{"/wiki/A": "a"})}
		cached, err := NewCachedSource(counter, 8)
		if err != nil {
			t.Fatalf("NewCachedSource failed: %v", err)
		}

		for range 3 {
			got, err := cached.Fetch(ctx, "/wiki/A")
			if err != nil || got != "a" {
				t.Fatalf("Fetch = %q, %v", got, err)
			}
		}
		if counter.calls.Load() != 1 {
			t.Errorf("expected 1 inner fetch, got %d", counter.calls.Load())
		}
		if cached.Len() != 1 {
			t.Errorf("expected 1 cached page, got %d", cached.Len())
		}
	})

	t.Run("recorders above the cache still see every fetch", func(t *testing.T) {
		t.Parallel()

		counter := &countingSource{inner: NewMemorySource(nil)}
		cached, err := NewCachedSource(counter, 8)
		if err != nil {
			t.Fatalf("NewCachedSource failed: %v", err)
		}
		factory := NewFactory(cached)

		var wg sync.WaitGroup
		recorders := make([]*Recorder, 4)
		for i := range recorders {
			recorders[i] = factory()
			wg.Add(1)
			go func(rec *Recorder) {
				defer wg.Done()
				_, _ = rec.Fetch(ctx, "/wiki/Shared")
			}(recorders[i])
		}
		wg.Wait()

		for i, rec := range recorders {
			if rec.Count() != 1 {
				t.Errorf("recorder %d: expected 1 logged fetch, got %d", i, rec.Count())
			}
		}
		if counter.calls.Load() > int32(len(recorders)) || counter.calls.Load() < 1 {
			t.Errorf("unexpected inner fetch count %d", counter.calls.Load())
		}
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		var fail atomic.Bool
		fail.Store(true)
		inner := SourceFunc(func(context.Context, model.PageID) (string, error) {
			if fail.Load() {
				return "", errors.New("transient")
			}
			return "ok", nil
		})
		cached, err := NewCachedSource(inner, 8)
		if err != nil {
			t.Fatalf("NewCachedSource failed: %v", err)
		}

		if _, err := cached.Fetch(ctx, "/wiki/A"); err == nil {
			t.Fatal("expected first fetch to fail")
		}
		fail.Store(false)
		got, err := cached.Fetch(ctx, "/wiki/A")
		if err != nil || got != "ok" {
			t.Errorf("Fetch = %q, %v", got, err)
		}
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		t.Parallel()
		if _, err := NewCachedSource(NewMemorySource(nil), 0); !errors.Is(err, ErrInvalidCacheSize) {
			t.Errorf("expected ErrInvalidCacheSize, got %v", err)
		}
	})
}
