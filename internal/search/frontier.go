package search

import (
	"container/heap"

	"github.com/nao1215/wikiracer/internal/model"
)

// queue is a FIFO frontier.
type queue struct {
	items []model.PageID
	head  int
}

func (q *queue) push(id model.PageID) {
	q.items = append(q.items, id)
}

func (q *queue) pop() model.PageID {
	id := q.items[q.head]
	q.items[q.head] = ""
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array.
	if q.head > 64 && q.head*2 > len(q.items) {
		q.items = append(q.items[:0], q.items[q.head:]...)
		q.head = 0
	}
	return id
}

func (q *queue) len() int {
	return len(q.items) - q.head
}

// stack is a LIFO frontier.
type stack struct {
	items []model.PageID
}

func (s *stack) push(id model.PageID) {
	s.items = append(s.items, id)
}

func (s *stack) peek() model.PageID {
	return s.items[len(s.items)-1]
}

func (s *stack) pop() model.PageID {
	id := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return id
}

func (s *stack) len() int {
	return len(s.items)
}

// pqItem is an entry of the priority frontier.
type pqItem struct {
	id       model.PageID
	priority float64
	// steps breaks priority ties before the page identifier does.
	steps float64
}

// pageHeap implements heap.Interface as a min-heap ordered by
// (priority, steps, id). The order is total, so pops are deterministic.
type pageHeap []pqItem

func (h pageHeap) Len() int { return len(h) }

func (h pageHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	if h[i].steps != h[j].steps {
		return h[i].steps < h[j].steps
	}
	return h[i].id < h[j].id
}

func (h pageHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pageHeap) Push(x any) {
	*h = append(*h, x.(pqItem)) //nolint:forcetypeassert // only pqItem is pushed
}

func (h *pageHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// priorityQueue wraps pageHeap with typed helpers.
type priorityQueue struct {
	h pageHeap
}

func (pq *priorityQueue) push(item pqItem) {
	heap.Push(&pq.h, item)
}

func (pq *priorityQueue) pop() pqItem {
	return heap.Pop(&pq.h).(pqItem) //nolint:forcetypeassert // only pqItem is pushed
}

func (pq *priorityQueue) len() int {
	return pq.h.Len()
}
