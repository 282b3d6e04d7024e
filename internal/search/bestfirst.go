package search

import (
	"context"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// BestFirst orders its frontier by steps from the source plus a heuristic
// score (DefaultHeuristic unless WithHeuristic is given). Ties go to the
// page with fewer steps, then to the smaller PageID.
type BestFirst struct {
	engine
}

// NewBestFirst creates a best-first search over src.
func NewBestFirst(src corpus.Source, opts ...Option) *BestFirst {
	return &BestFirst{engine: newEngine(NameBestFirst, src, opts)}
}

// Search returns a path from source to goal.
func (s *BestFirst) Search(ctx context.Context, source, goal model.PageID) (model.Path, error) {
	if source == goal {
		return s.samePage(ctx, source)
	}

	var frontier priorityQueue
	frontier.push(pqItem{id: source, priority: s.opts.heuristic(source, goal)})
	visited := map[model.PageID]bool{source: true}
	parent := make(map[model.PageID]model.PageID)

	fetches := 0
	for frontier.len() > 0 {
		current := frontier.pop()
		fetches++
		links, err := s.expand(ctx, current.id, fetches)
		if err != nil {
			return nil, err
		}

		steps := current.steps + 1
		for _, link := range links {
			if visited[link] {
				continue
			}
			visited[link] = true
			parent[link] = current.id
			frontier.push(pqItem{
				id:       link,
				priority: steps + s.opts.heuristic(link, goal),
				steps:    steps,
			})
			if link == goal {
				return reconstruct(parent, source, goal), nil
			}
		}
	}
	return nil, ErrNoPath
}
