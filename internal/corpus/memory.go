package corpus

import (
	"context"
	"sync"

	"github.com/nao1215/wikiracer/internal/model"
)

// MemorySource serves pages from a map.
type MemorySource struct {
	denyList

	mu    sync.RWMutex
	pages map[model.PageID]string
}

// NewMemorySource creates a MemorySource holding a copy of pages.
func NewMemorySource(pages map[model.PageID]string) *MemorySource {
	m := &MemorySource{
		denyList: newDenyList(),
		pages:    make(map[model.PageID]string, len(pages)),
	}
	for id, content := range pages {
		m.pages[id] = content
	}
	return m
}

// Set stores or replaces a page.
func (m *MemorySource) Set(id model.PageID, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[id] = content
}

// Len returns the number of stored pages.
func (m *MemorySource) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pages)
}

// Fetch returns the stored page, or Placeholder when it is unknown.
func (m *MemorySource) Fetch(ctx context.Context, id model.PageID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.pages[id]
	if !ok {
		return Placeholder, nil
	}
	return content, nil
}
