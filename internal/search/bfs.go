package search

import (
	"context"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// BFS is a breadth-first search. The path it returns has the fewest links of
// any path in the graph.
type BFS struct {
	engine
}

// NewBFS creates a breadth-first search over src.
func NewBFS(src corpus.Source, opts ...Option) *BFS {
	return &BFS{engine: newEngine(NameBFS, src, opts)}
}

// Search returns a path from source to goal.
func (s *BFS) Search(ctx context.Context, source, goal model.PageID) (model.Path, error) {
	if source == goal {
		return s.samePage(ctx, source)
	}

	var frontier queue
	frontier.push(source)
	visited := map[model.PageID]bool{source: true}
	parent := make(map[model.PageID]model.PageID)

	fetches := 0
	for frontier.len() > 0 {
		current := frontier.pop()
		fetches++
		links, err := s.expand(ctx, current, fetches)
		if err != nil {
			return nil, err
		}

		for _, link := range links {
			if visited[link] {
				continue
			}
			visited[link] = true
			parent[link] = current
			if link == goal {
				return reconstruct(parent, source, goal), nil
			}
			frontier.push(link)
		}
	}
	return nil, ErrNoPath
}
