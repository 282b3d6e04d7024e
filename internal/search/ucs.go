package search

import (
	"context"

	"github.com/nao1215/wikiracer/internal/corpus"
	"github.com/nao1215/wikiracer/internal/model"
)

// UCS is a uniform-cost search over the lexical edge cost (DefaultCost unless
// WithCostFunc is given). Equal costs are expanded in PageID order.
type UCS struct {
	engine
}

// NewUCS creates a uniform-cost search over src.
func NewUCS(src corpus.Source, opts ...Option) *UCS {
	return &UCS{engine: newEngine(NameUCS, src, opts)}
}

// Search returns a path from source to goal.
func (s *UCS) Search(ctx context.Context, source, goal model.PageID) (model.Path, error) {
	if source == goal {
		return s.samePage(ctx, source)
	}

	var frontier priorityQueue
	frontier.push(pqItem{id: source})
	visited := map[model.PageID]bool{source: true}
	parent := make(map[model.PageID]model.PageID)
	cost := map[model.PageID]float64{source: 0}

	fetches := 0
	for frontier.len() > 0 {
		current := frontier.pop().id
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

			next := cost[current] + s.opts.cost(current, link)
			if old, ok := cost[link]; !ok || next < old {
				cost[link] = next
				frontier.push(pqItem{id: link, priority: next})
			}
			if link == goal {
				return reconstruct(parent, source, goal), nil
			}
		}
	}
	return nil, ErrNoPath
}
