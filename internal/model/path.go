package model

import "strings"

// Path is an ordered sequence of pages from a source to a goal, both inclusive.
// A search from a page to itself yields the two-element path [x, x].
type Path []PageID

// Edges returns the number of links followed along the path.
func (p Path) Edges() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Source returns the first page, or "" for an empty path.
func (p Path) Source() PageID {
	if len(p) == 0 {
		return ""
	}
	return p[0]
}

// Goal returns the last page, or "" for an empty path.
func (p Path) Goal() PageID {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Strings converts the path to plain strings.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, id := range p {
		out[i] = string(id)
	}
	return out
}

// String renders the path as "a -> b -> c".
func (p Path) String() string {
	return strings.Join(p.Strings(), " -> ")
}
