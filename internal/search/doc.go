// Package search implements the path-finding strategies that race across the
// link graph.
//
// Edges are only known after a page is fetched, and fetches are the expensive
// operation, so every strategy returns as soon as the goal is discovered as a
// link rather than waiting for it to be expanded.
//
// # Strategies
//
//   - BFS: FIFO frontier, returns a path with the fewest links
//   - DFS: explicit stack with lazy deletion, bounded by a wall-clock budget
//   - UCS: min-heap on cumulative lexical edge cost
//   - BestFirst: min-heap on steps taken plus a lexical similarity score
//
// Every strategy follows the same contract: a search from a page to itself
// fetches that page once and returns [page, page]; otherwise it returns the
// path from source to goal or ErrNoPath. Each call owns its frontier,
// visited set and parent map; nothing is shared between calls.
//
// # Usage
//
//	rec := corpus.NewRecorder(src)
//	path, err := search.NewBestFirst(rec).Search(ctx, "/wiki/Calvin_Li", "/wiki/Wikipedia")
//	if errors.Is(err, search.ErrNoPath) {
//		// goal unreachable
//	}
//	fmt.Println(path, rec.Count())
package search
