package corpus

import (
	"context"
	"sync"

	"github.com/nao1215/wikiracer/internal/model"
)

// Recorder wraps a Source and logs every fetch in order.
// The log lives as long as the Recorder; use a fresh Recorder per search.
type Recorder struct {
	source Source

	mu       sync.Mutex
	requests []model.PageID
}

// NewRecorder creates a Recorder around source.
func NewRecorder(source Source) *Recorder {
	return &Recorder{
		source:   source,
		requests: make([]model.PageID, 0),
	}
}

// Fetch logs id and fetches it from the wrapped source.
// The request is logged even when the wrapped source fails.
func (r *Recorder) Fetch(ctx context.Context, id model.PageID) (string, error) {
	r.mu.Lock()
	r.requests = append(r.requests, id)
	r.mu.Unlock()

	return r.source.Fetch(ctx, id)
}

// Disallowed returns the wrapped source's disallowed characters.
func (r *Recorder) Disallowed() string {
	return r.source.Disallowed()
}

// Requests returns a copy of the fetch log.
func (r *Recorder) Requests() []model.PageID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.PageID, len(r.requests))
	copy(out, r.requests)
	return out
}

// Count returns the number of fetches so far.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Factory produces a fresh Recorder for every search.
type Factory func() *Recorder

// NewFactory returns a Factory whose recorders all wrap source.
// The source itself is shared, so it must be safe for concurrent use
// when searches run in parallel.
func NewFactory(source Source) Factory {
	return func() *Recorder {
		return NewRecorder(source)
	}
}
