package queue

import (
	"container/heap"
	"strings"
)

// Priorizable is an item of a MinHeap. Items with equal priority are ordered
// by Key, which makes the pop order independent of insertion history.
type Priorizable interface {
	Priority() float64
	Key() int
	Index() int
	SetIndex(index int)
	String() string
}

// MinHeap pops the item with the smallest priority first.
type MinHeap[T Priorizable] struct {
	items items[T]
}

func NewMinHeap[T Priorizable](initial []T) *MinHeap[T] {
	h := &MinHeap[T]{items: make(items[T], len(initial))}
	for i, item := range initial {
		h.items[i] = item
		item.SetIndex(i)
	}
	heap.Init(&h.items)
	return h
}

// implements heap.Interface
type items[T Priorizable] []T

func (q items[T]) Len() int { return len(q) }
func (q items[T]) Less(i, j int) bool {
	if q[i].Priority() != q[j].Priority() {
		return q[i].Priority() < q[j].Priority()
	}
	return q[i].Key() < q[j].Key()
}
func (q items[T]) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].SetIndex(i)
	q[j].SetIndex(j)
}
func (q *items[T]) Push(x any) {
	item := x.(T)
	item.SetIndex(len(*q))
	*q = append(*q, item)
}
func (q *items[T]) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	var zero T
	old[n-1] = zero
	item.SetIndex(-1)
	*q = old[:n-1]
	return item
}

func (h *MinHeap[T]) Len() int    { return h.items.Len() }
func (h *MinHeap[T]) Push(item T) { heap.Push(&h.items, item) }
func (h *MinHeap[T]) Pop() T      { return heap.Pop(&h.items).(T) }

// Update restores the heap order after the priority of item changed.
func (h *MinHeap[T]) Update(item T) { heap.Fix(&h.items, item.Index()) }

func (h *MinHeap[T]) Peek() T          { return h.items[0] }
func (h *MinHeap[T]) Remove(index int) { heap.Remove(&h.items, index) }
func (h *MinHeap[T]) String() string {
	var sb strings.Builder
	for _, item := range h.items {
		sb.WriteString(item.String())
	}
	return sb.String()
}
