// Package fastpq implements a bucketed priority queue for integer priorities.
//
// Data sharing a priority live in one insertion-ordered bucket, and the queue
// tracks the highest non-empty bucket, so Insert is O(1) amortised and Extract
// costs O(distinct priorities) only when a bucket runs dry.
//
// The queue is its own cursor. Rewind snapshots the priorities present at that
// moment and Next walks the snapshot, so removing entries mid-iteration neither
// skips nor repeats the rest:
//
//	for q.Rewind(); q.Valid(); q.Next() {
//		v, _ := q.CurrentItem()
//		if v.Priority < 0 {
//			q.Remove(v.Data)
//		}
//	}
//
// Entries inserted during such a loop are visited only when their priority is
// part of the snapshot and the cursor has not yet passed that bucket. Calling
// Extract during a live iteration is not supported; drain with Extract instead.
//
// A FastPriorityQueue is not safe for concurrent use.
package fastpq

import (
	"cmp"
	"encoding/json"
	"iter"
	"maps"
	"prioq/pkg/datastruct/collection"
	"slices"
)

type entry[T comparable] struct {
	data   T
	serial uint64
}

type FastPriorityQueue[T comparable] struct {
	buckets     map[int][]entry[T]
	maxPriority int
	count       int
	serial      uint64
	mode        collection.ExtractMode

	// cursor: snapshot[cursor] is the current priority, pos the index in its bucket
	snapshot []int
	cursor   int
	pos      int
	// reseated is set when the entry under the cursor was removed and the
	// following entry slid into its place; the next Next must not advance
	reseated bool
}

func New[T comparable]() *FastPriorityQueue[T] {
	return &FastPriorityQueue[T]{
		buckets: make(map[int][]entry[T]),
		mode:    collection.ExtractData,
	}
}

func (q *FastPriorityQueue[T]) Insert(data T, priority int) {
	if q.buckets == nil {
		q.buckets = make(map[int][]entry[T])
	}
	q.serial++
	q.buckets[priority] = append(q.buckets[priority], entry[T]{data: data, serial: q.serial})
	if q.count == 0 || priority > q.maxPriority {
		q.maxPriority = priority
	}
	q.count++
}

// Extract removes and returns the oldest datum of the highest priority.
func (q *FastPriorityQueue[T]) Extract() (T, error) {
	item, err := q.ExtractItem()
	return item.Data, err
}

func (q *FastPriorityQueue[T]) ExtractItem() (collection.Item[T], error) {
	if q.count == 0 {
		return collection.Item[T]{}, collection.ErrEmpty
	}
	priority := q.maxPriority
	bucket := q.buckets[priority]
	head := bucket[0]
	q.count--
	if len(bucket) == 1 {
		delete(q.buckets, priority)
		q.recomputeMax()
	} else {
		bucket[0] = entry[T]{}
		q.buckets[priority] = bucket[1:]
	}
	return collection.Item[T]{Data: head.data, Priority: priority}, nil
}

// Poll is Extract shaped by the extraction mode.
func (q *FastPriorityQueue[T]) Poll() (any, error) {
	item, err := q.ExtractItem()
	if err != nil {
		return nil, err
	}
	return collection.Select(q.ExtractionMode(), item.Data, item.Priority), nil
}

// Remove deletes the first datum equal to datum, scanning buckets from the
// highest priority down, and reports whether one was found.
// Data are compared with ==, which panics when T is an interface type holding
// a map, slice or func.
func (q *FastPriorityQueue[T]) Remove(datum T) bool {
	for _, priority := range q.priorities() {
		bucket := q.buckets[priority]
		for i, e := range bucket {
			if e.data != datum {
				continue
			}
			q.removeAt(priority, i)
			return true
		}
	}
	return false
}

func (q *FastPriorityQueue[T]) removeAt(priority, idx int) {
	bucket := q.buckets[priority]
	if len(bucket) == 1 {
		delete(q.buckets, priority)
	} else {
		q.buckets[priority] = slices.Delete(bucket, idx, idx+1)
	}
	q.count--
	if len(bucket) == 1 && priority == q.maxPriority {
		q.recomputeMax()
	}

	if q.cursor >= len(q.snapshot) || q.snapshot[q.cursor] != priority {
		return
	}
	switch {
	case idx < q.pos:
		q.pos--
	case idx == q.pos:
		q.reseated = true
	}
}

func (q *FastPriorityQueue[T]) recomputeMax() {
	first := true
	for p := range q.buckets {
		if first || p > q.maxPriority {
			q.maxPriority = p
			first = false
		}
	}
	if first {
		q.maxPriority = 0
	}
}

// priorities returns the non-empty priorities, highest first.
func (q *FastPriorityQueue[T]) priorities() []int {
	ps := slices.Sorted(maps.Keys(q.buckets))
	slices.Reverse(ps)
	return ps
}

// Rewind moves the cursor to the head of the highest priority bucket and
// snapshots the priorities Next will walk.
func (q *FastPriorityQueue[T]) Rewind() {
	q.snapshot = q.priorities()
	q.cursor = 0
	q.pos = 0
	q.reseated = false
}

// Valid reports whether the cursor points at an entry.
func (q *FastPriorityQueue[T]) Valid() bool {
	q.settle()
	return q.cursor < len(q.snapshot)
}

func (q *FastPriorityQueue[T]) Next() {
	if q.cursor >= len(q.snapshot) {
		return
	}
	if q.reseated {
		q.reseated = false
		return
	}
	q.pos++
}

// settle moves the cursor past exhausted or removed buckets.
func (q *FastPriorityQueue[T]) settle() {
	for q.cursor < len(q.snapshot) {
		if q.pos < len(q.buckets[q.snapshot[q.cursor]]) {
			return
		}
		q.cursor++
		q.pos = 0
	}
}

// Current returns the entry under the cursor shaped by the extraction mode.
func (q *FastPriorityQueue[T]) Current() (any, error) {
	item, err := q.CurrentItem()
	if err != nil {
		return nil, err
	}
	return collection.Select(q.ExtractionMode(), item.Data, item.Priority), nil
}

func (q *FastPriorityQueue[T]) CurrentItem() (collection.Item[T], error) {
	if !q.Valid() {
		return collection.Item[T]{}, collection.ErrEmpty
	}
	priority := q.snapshot[q.cursor]
	return collection.Item[T]{Data: q.buckets[priority][q.pos].data, Priority: priority}, nil
}

func (q *FastPriorityQueue[T]) SetExtractionMode(mode collection.ExtractMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	q.mode = mode
	return nil
}

func (q *FastPriorityQueue[T]) ExtractionMode() collection.ExtractMode {
	if q.mode == 0 {
		return collection.ExtractData
	}
	return q.mode
}

// Contains reports whether any bucket holds a datum equal to datum.
// Data are compared with ==, which panics when T is an interface type holding
// a map, slice or func.
func (q *FastPriorityQueue[T]) Contains(datum T) bool {
	for _, bucket := range q.buckets {
		for _, e := range bucket {
			if e.data == datum {
				return true
			}
		}
	}
	return false
}

func (q *FastPriorityQueue[T]) HasPriority(priority int) bool {
	_, ok := q.buckets[priority]
	return ok
}

func (q *FastPriorityQueue[T]) Count() int {
	return q.count
}

func (q *FastPriorityQueue[T]) IsEmpty() bool {
	return q.count == 0
}

// Clone copies buckets and cursor state.
func (q *FastPriorityQueue[T]) Clone() *FastPriorityQueue[T] {
	c := *q
	c.buckets = make(map[int][]entry[T], len(q.buckets))
	for p, bucket := range q.buckets {
		c.buckets[p] = slices.Clone(bucket)
	}
	c.snapshot = slices.Clone(q.snapshot)
	return &c
}

// Clear drops every entry. The extraction mode is kept.
func (q *FastPriorityQueue[T]) Clear() {
	*q = FastPriorityQueue[T]{buckets: make(map[int][]entry[T]), mode: q.mode}
}

// ToArray drains a clone in priority order, shaped by the extraction mode.
func (q *FastPriorityQueue[T]) ToArray() []any {
	c := q.Clone()
	result := make([]any, 0, c.count)
	for c.count > 0 {
		v, _ := c.Poll()
		result = append(result, v)
	}
	return result
}

// All yields data in priority order by draining a clone taken when the range starts.
func (q *FastPriorityQueue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		c := q.Clone()
		for c.count > 0 {
			v, _ := c.Extract()
			if !yield(v) {
				return
			}
		}
	}
}

// Export returns every entry in insertion order.
func (q *FastPriorityQueue[T]) Export() []collection.Record[T] {
	type numbered struct {
		collection.Record[T]
		serial uint64
	}
	all := make([]numbered, 0, q.count)
	for p, bucket := range q.buckets {
		for _, e := range bucket {
			all = append(all, numbered{collection.Record[T]{Data: e.data, Priority: p}, e.serial})
		}
	}
	slices.SortFunc(all, func(a, b numbered) int {
		return cmp.Compare(a.serial, b.serial)
	})
	result := make([]collection.Record[T], len(all))
	for i, n := range all {
		result[i] = n.Record
	}
	return result
}

func (q *FastPriorityQueue[T]) Import(records []collection.Record[T]) {
	for _, r := range records {
		q.Insert(r.Data, r.Priority)
	}
}

func (q *FastPriorityQueue[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Export())
}

// UnmarshalJSON replaces the queue content with the decoded records.
// Records without a priority get collection.LegacyDefaultPriority.
func (q *FastPriorityQueue[T]) UnmarshalJSON(data []byte) error {
	records, err := collection.DecodeRecords[T](data, collection.DecodeOptions{
		DefaultPriority: collection.LegacyDefaultPriority,
	})
	if err != nil {
		return err
	}
	q.Clear()
	q.Import(records)
	return nil
}
