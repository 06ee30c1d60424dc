// Package heap is a binary max-heap keyed by (priority, serial).
// Equal priorities surface in ascending serial order, which gives FIFO
// behaviour for entries inserted through Insert.
//
// Priorities must form a total order; NaN floats leave the order undefined.
package heap

import (
	"container/heap"
	"prioq/pkg/datastruct/collection"

	"golang.org/x/exp/constraints"
)

type Item[T any, P constraints.Ordered] struct {
	Value    T
	Priority P
	serial   uint64
	index    int
}

// Serial is the tie-break counter assigned when the item entered the heap.
func (i *Item[T, P]) Serial() uint64 {
	return i.serial
}

type items[T any, P constraints.Ordered] []*Item[T, P]

func (it items[T, P]) Len() int {
	return len(it)
}

func (it items[T, P]) Less(i, j int) bool {
	if it[i].Priority != it[j].Priority {
		return it[i].Priority > it[j].Priority
	}
	return it[i].serial < it[j].serial
}

func (it items[T, P]) Swap(i, j int) {
	it[i], it[j] = it[j], it[i]
	it[i].index = i
	it[j].index = j
}

func (it *items[T, P]) Push(x any) {
	item := x.(*Item[T, P])
	item.index = len(*it)
	*it = append(*it, item)
}

func (it *items[T, P]) Pop() any {
	old := *it
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*it = old[0 : n-1]
	return item
}

type Heap[T any, P constraints.Ordered] struct {
	items  items[T, P]
	serial uint64
}

func New[T any, P constraints.Ordered]() *Heap[T, P] {
	return &Heap[T, P]{items: make(items[T, P], 0, 8)}
}

// Insert adds value with the next serial and returns that serial.
func (h *Heap[T, P]) Insert(value T, priority P) uint64 {
	h.serial++
	heap.Push(&h.items, &Item[T, P]{Value: value, Priority: priority, serial: h.serial})
	return h.serial
}

// Restore adds value under an existing serial, used when rebuilding from
// records that already own one. Later Inserts continue after the largest
// serial seen.
func (h *Heap[T, P]) Restore(value T, priority P, serial uint64) {
	if serial > h.serial {
		h.serial = serial
	}
	heap.Push(&h.items, &Item[T, P]{Value: value, Priority: priority, serial: serial})
}

func (h *Heap[T, P]) ExtractMax() (*Item[T, P], error) {
	if len(h.items) == 0 {
		return nil, collection.ErrEmpty
	}
	return heap.Pop(&h.items).(*Item[T, P]), nil
}

func (h *Heap[T, P]) Peek() (*Item[T, P], error) {
	if len(h.items) == 0 {
		return nil, collection.ErrEmpty
	}
	return h.items[0], nil
}

func (h *Heap[T, P]) Len() int {
	return len(h.items)
}

// Clone copies every item so that draining the clone leaves h intact.
func (h *Heap[T, P]) Clone() *Heap[T, P] {
	c := &Heap[T, P]{items: make(items[T, P], len(h.items), cap(h.items)), serial: h.serial}
	for i, item := range h.items {
		cp := *item
		c.items[i] = &cp
	}
	return c
}
