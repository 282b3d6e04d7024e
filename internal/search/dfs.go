package search

import (
	"context"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// DFS is a depth-first search bounded by a wall-clock budget.
//
// The stack uses lazy deletion: a page may be pushed several times, and the
// copy found on top after it was expanded is discarded. Each push records the
// pushing page as parent, so the parent map always points along the branch
// that is actually being explored.
type DFS struct {
	engine
}

// NewDFS creates a depth-first search over src.
func NewDFS(src corpus.Source, opts ...Option) *DFS {
	return &DFS{engine: newEngine(NameDFS, src, opts)}
}

// Search returns a path from source to goal.
// It fails with ErrTimeBudgetExceeded once the time budget is spent.
func (s *DFS) Search(ctx context.Context, source, goal model.PageID) (model.Path, error) {
	if source == goal {
		return s.samePage(ctx, source)
	}

	start := s.opts.now()
	var frontier stack
	frontier.push(source)
	visited := make(map[model.PageID]bool)
	parent := make(map[model.PageID]model.PageID)

	fetches := 0
	for frontier.len() > 0 {
		if s.opts.now().Sub(start) >= s.opts.timeBudget {
			s.opts.logger.Debug("time budget exceeded",
				"strategy", s.name,
				"budget", s.opts.timeBudget.String(),
				"fetches", fetches,
			)
			return nil, ErrTimeBudgetExceeded
		}

		current := frontier.peek()
		if visited[current] {
			frontier.pop()
			continue
		}
		visited[current] = true

		fetches++
		links, err := s.expand(ctx, current, fetches)
		if err != nil {
			return nil, err
		}

		pushed := 0
		for _, link := range links {
			if visited[link] {
				continue
			}
			frontier.push(link)
			parent[link] = current
			pushed++
			if link == goal {
				return reconstruct(parent, source, goal), nil
			}
		}
		if pushed == 0 {
			frontier.pop()
		}
	}
	return nil, ErrNoPath
}
