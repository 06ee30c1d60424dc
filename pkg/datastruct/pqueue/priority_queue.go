// Package pqueue implements a reusable priority queue.
//
// Membership is kept in an insertion-ordered record list, which backs Count,
// Contains, Remove and Export. A heap built from those records is used only
// for extraction and traversal; iterating drains a clone of it, so a queue can
// be iterated any number of times without losing entries.
//
// A PriorityQueue is not safe for concurrent use.
package pqueue

import (
	"encoding/json"
	"iter"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/datastruct/heap"
	"prioq/pkg/datastruct/list"
)

// DefaultPriority is used by InsertDefault.
const DefaultPriority = 1

type record[T comparable] struct {
	data     T
	priority int
	serial   uint64
}

// PriorityQueue orders data by priority, highest first, breaking ties in
// insertion order. The zero value is an empty queue.
type PriorityQueue[T comparable] struct {
	records list.LinkedList[*record[T]]
	// heap is nil until an operation needs it, and after Remove
	heap   *heap.Heap[T, int]
	serial uint64
}

func New[T comparable]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

func (pq *PriorityQueue[T]) Insert(data T, priority int) {
	pq.serial++
	r := &record[T]{data: data, priority: priority, serial: pq.serial}
	pq.records.AddRight(r)
	if pq.heap != nil {
		pq.heap.Restore(r.data, r.priority, r.serial)
	}
}

func (pq *PriorityQueue[T]) InsertDefault(data T) {
	pq.Insert(data, DefaultPriority)
}

// Remove deletes the first record equal to datum and reports whether one was
// found. Surviving records keep their serials. It runs in O(n).
// Data are compared with ==, which panics when T is an interface type holding
// a map, slice or func.
func (pq *PriorityQueue[T]) Remove(datum T) bool {
	_, ok := pq.records.RemoveFirst(func(r *record[T]) bool {
		return r.data == datum
	})
	if ok {
		pq.heap = nil
	}
	return ok
}

// Extract removes and returns the highest priority datum.
func (pq *PriorityQueue[T]) Extract() (T, error) {
	item, err := pq.ExtractItem()
	return item.Data, err
}

// ExtractItem is Extract that also reports the priority.
func (pq *PriorityQueue[T]) ExtractItem() (collection.Item[T], error) {
	top, err := pq.getHeap().ExtractMax()
	if err != nil {
		return collection.Item[T]{}, err
	}
	// serials are unique, so this is the record with equal data and the
	// highest priority that was inserted first
	pq.records.RemoveFirst(func(r *record[T]) bool {
		return r.serial == top.Serial()
	})
	return collection.Item[T]{Data: top.Value, Priority: top.Priority}, nil
}

// Top returns the highest priority datum without removing it.
func (pq *PriorityQueue[T]) Top() (T, error) {
	top, err := pq.getHeap().Peek()
	if err != nil {
		var zero T
		return zero, err
	}
	return top.Value, nil
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.records.Size() == 0
}

func (pq *PriorityQueue[T]) Count() int {
	return pq.records.Size()
}

// Contains reports whether a record equal to datum exists.
// Data are compared with ==, which panics when T is an interface type holding
// a map, slice or func.
func (pq *PriorityQueue[T]) Contains(datum T) bool {
	found := false
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		found = r.data == datum
		return !found
	})
	return found
}

func (pq *PriorityQueue[T]) HasPriority(priority int) bool {
	found := false
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		found = r.priority == priority
		return !found
	})
	return found
}

// All yields data in priority order. Each range drains a fresh clone of the
// heap, so iterations are independent of each other and of the queue.
func (pq *PriorityQueue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		h := pq.getHeap().Clone()
		for h.Len() > 0 {
			top, _ := h.ExtractMax()
			if !yield(top.Value) {
				return
			}
		}
	}
}

// ToArray returns entries in insertion order, shaped by mode.
func (pq *PriorityQueue[T]) ToArray(mode collection.ExtractMode) ([]any, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	result := make([]any, 0, pq.records.Size())
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		result = append(result, collection.Select(mode, r.data, r.priority))
		return true
	})
	return result, nil
}

// Values returns data in insertion order.
func (pq *PriorityQueue[T]) Values() []T {
	result := make([]T, 0, pq.records.Size())
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		result = append(result, r.data)
		return true
	})
	return result
}

// Items returns data and priorities in insertion order.
func (pq *PriorityQueue[T]) Items() []collection.Item[T] {
	result := make([]collection.Item[T], 0, pq.records.Size())
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		result = append(result, collection.Item[T]{Data: r.data, Priority: r.priority})
		return true
	})
	return result
}

// Clone returns a queue with its own record list and heap.
func (pq *PriorityQueue[T]) Clone() *PriorityQueue[T] {
	c := &PriorityQueue[T]{records: *pq.records.Clone(), serial: pq.serial}
	if pq.heap != nil {
		c.heap = pq.heap.Clone()
	}
	return c
}

func (pq *PriorityQueue[T]) Clear() {
	*pq = PriorityQueue[T]{}
}

// Export returns every entry in insertion order.
func (pq *PriorityQueue[T]) Export() []collection.Record[T] {
	result := make([]collection.Record[T], 0, pq.records.Size())
	pq.records.ForEach(func(_ int, r *record[T]) bool {
		result = append(result, collection.Record[T]{Data: r.data, Priority: r.priority})
		return true
	})
	return result
}

// Import inserts records in sequence, as if Insert had been called for each.
func (pq *PriorityQueue[T]) Import(records []collection.Record[T]) {
	for _, r := range records {
		pq.Insert(r.Data, r.Priority)
	}
}

func (pq *PriorityQueue[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(pq.Export())
}

// UnmarshalJSON replaces the queue content with the decoded records.
// Records without a priority get collection.LegacyDefaultPriority.
func (pq *PriorityQueue[T]) UnmarshalJSON(data []byte) error {
	records, err := collection.DecodeRecords[T](data, collection.DecodeOptions{
		DefaultPriority: collection.LegacyDefaultPriority,
	})
	if err != nil {
		return err
	}
	pq.Clear()
	pq.Import(records)
	return nil
}

func (pq *PriorityQueue[T]) getHeap() *heap.Heap[T, int] {
	if pq.heap == nil {
		h := heap.New[T, int]()
		pq.records.ForEach(func(_ int, r *record[T]) bool {
			h.Restore(r.data, r.priority, r.serial)
			return true
		})
		pq.heap = h
	}
	return pq.heap
}
