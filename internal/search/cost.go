package search

import (
	"math"
	"strings"

	"github.com/nao1215/wikiracer/internal/model"
)

// CostFunc returns the cost of following the link from one page to another.
type CostFunc func(from, to model.PageID) float64

// HeuristicFunc scores a page against the goal.
type HeuristicFunc func(page, goal model.PageID) float64

// DefaultCost is the lexical edge cost used by UCS:
//
//	(|words(from) - words(to)| + 1) / (shared words + 1)
//
// Pages with similar word counts that share words are cheap to move between.
func DefaultCost(from, to model.PageID) float64 {
	fromWords, toWords := from.Words(), to.Words()
	diff := math.Abs(float64(len(fromWords) - len(toWords)))
	return (diff + 1) / float64(sharedWords(fromWords, toWords)+1)
}

// DefaultHeuristic is the similarity score used by BestFirst:
//
//	(shared characters + 10 * shared words) / (|words(page) - words(goal)| + 1)
//
// Shared characters counts every character of page, with repetition, that
// occurs anywhere in goal. The score is added to the step count, so pages that
// look like the goal are expanded later, not sooner.
func DefaultHeuristic(page, goal model.PageID) float64 {
	pageWords, goalWords := page.Words(), goal.Words()
	diff := math.Abs(float64(len(pageWords) - len(goalWords)))
	score := float64(sharedChars(page, goal) + 10*sharedWords(pageWords, goalWords))
	return score / (diff + 1)
}

// sharedWords counts words present in both sets.
func sharedWords(a, b map[string]struct{}) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// sharedChars counts the characters of page that also occur in goal.
func sharedChars(page, goal model.PageID) int {
	n := 0
	for _, r := range string(page) {
		if strings.ContainsRune(string(goal), r) {
			n++
		}
	}
	return n
}
