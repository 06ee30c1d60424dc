// Package prioritylist maps unique names to prioritized values.
//
// Entries are ordered by priority, highest first. Entries with equal priority
// are ordered by insertion, most recent first (LIFO) by default or oldest
// first (FIFO) after SetLIFO(false). Sorting is lazy: mutations only mark the
// list unsorted, and the next read that depends on order sorts it once.
//
// A PriorityList is not safe for concurrent use.
package prioritylist

import (
	"cmp"
	"encoding/json"
	"fmt"
	"iter"
	"prioq/pkg/datastruct/collection"
	"prioq/pkg/datastruct/dict"
	"slices"
)

// DefaultPriority is used by InsertDefault.
const DefaultPriority = 0

type entry[V any] struct {
	name     string
	value    V
	priority int
	serial   uint64
}

// PriorityList is a name keyed collection iterated in priority order.
// The zero value is an empty LIFO list.
type PriorityList[V any] struct {
	items  dict.Dict[*entry[V]]
	order  []*entry[V]
	serial uint64
	sorted bool
	fifo   bool

	// iterating is set by Rewind; the cursor only tracks removals after it
	iterating bool
	cursor    int
	reseated  bool
}

func New[V any]() *PriorityList[V] {
	return &PriorityList[V]{items: dict.NewSimpleDict[*entry[V]]()}
}

// Insert adds value under name. An existing name is overwritten in place with
// a fresh serial and the count is unchanged.
func (pl *PriorityList[V]) Insert(name string, value V, priority int) {
	pl.serial++
	if e, ok := pl.index().Get(name); ok {
		e.value = value
		e.priority = priority
		e.serial = pl.serial
	} else {
		e = &entry[V]{name: name, value: value, priority: priority, serial: pl.serial}
		pl.items.Put(name, e)
		pl.order = append(pl.order, e)
	}
	pl.sorted = false
}

func (pl *PriorityList[V]) InsertDefault(name string, value V) {
	pl.Insert(name, value, DefaultPriority)
}

// SetPriority changes the priority of name, failing with ErrNotFound when
// name is absent.
func (pl *PriorityList[V]) SetPriority(name string, priority int) error {
	e, ok := pl.index().Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", collection.ErrNotFound, name)
	}
	e.priority = priority
	pl.sorted = false
	return nil
}

// Remove deletes name if present. Removing an absent name is a no-op.
func (pl *PriorityList[V]) Remove(name string) {
	e, ok := pl.index().Get(name)
	if !ok {
		return
	}
	pl.items.Remove(name)
	if pl.iterating {
		// the cursor indexes the sorted order
		pl.sort()
	}
	idx := slices.Index(pl.order, e)
	pl.order = slices.Delete(pl.order, idx, idx+1)
	if !pl.iterating {
		return
	}
	switch {
	case idx < pl.cursor:
		pl.cursor--
	case idx == pl.cursor:
		pl.reseated = true
	}
}

// Clear removes every entry and resets the serial counter. The tie-break
// mode is kept.
func (pl *PriorityList[V]) Clear() {
	pl.index().Clear()
	pl.order = nil
	pl.serial = 0
	pl.sorted = false
	pl.iterating = false
	pl.cursor = 0
	pl.reseated = false
}

func (pl *PriorityList[V]) Get(name string) (V, bool) {
	e, ok := pl.index().Get(name)
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (pl *PriorityList[V]) Has(name string) bool {
	_, ok := pl.index().Get(name)
	return ok
}

func (pl *PriorityList[V]) Count() int {
	return pl.index().Len()
}

func (pl *PriorityList[V]) IsLIFO() bool {
	return !pl.fifo
}

// SetLIFO selects the tie-break rule. Changing it re-sorts on the next
// ordered read.
func (pl *PriorityList[V]) SetLIFO(lifo bool) {
	if lifo == pl.IsLIFO() {
		return
	}
	pl.fifo = !lifo
	pl.sorted = false
}

func (pl *PriorityList[V]) compare(a, b *entry[V]) int {
	if c := cmp.Compare(b.priority, a.priority); c != 0 {
		return c
	}
	if pl.fifo {
		return cmp.Compare(a.serial, b.serial)
	}
	return cmp.Compare(b.serial, a.serial)
}

func (pl *PriorityList[V]) sort() {
	if pl.sorted {
		return
	}
	slices.SortStableFunc(pl.order, pl.compare)
	pl.sorted = true
}

func (pl *PriorityList[V]) Rewind() {
	pl.sort()
	pl.iterating = true
	pl.cursor = 0
	pl.reseated = false
}

func (pl *PriorityList[V]) Valid() bool {
	return pl.cursor < len(pl.order)
}

func (pl *PriorityList[V]) Next() {
	if pl.reseated {
		pl.reseated = false
		return
	}
	pl.cursor++
}

func (pl *PriorityList[V]) Current() (V, error) {
	pl.sort()
	if !pl.Valid() {
		var zero V
		return zero, collection.ErrEmpty
	}
	return pl.order[pl.cursor].value, nil
}

func (pl *PriorityList[V]) Key() (string, error) {
	pl.sort()
	if !pl.Valid() {
		return "", collection.ErrEmpty
	}
	return pl.order[pl.cursor].name, nil
}

// All yields names and values in priority order. The order is captured when
// the range starts.
func (pl *PriorityList[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		pl.sort()
		for _, e := range slices.Clone(pl.order) {
			if !yield(e.name, e.value) {
				return
			}
		}
	}
}

// Names returns the names in priority order.
func (pl *PriorityList[V]) Names() []string {
	pl.sort()
	names := make([]string, len(pl.order))
	for i, e := range pl.order {
		names[i] = e.name
	}
	return names
}

// ToArray returns name and value pairs in priority order, with values shaped by mode.
func (pl *PriorityList[V]) ToArray(mode collection.ExtractMode) ([]collection.Named, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	pl.sort()
	result := make([]collection.Named, len(pl.order))
	for i, e := range pl.order {
		result[i] = collection.Named{Name: e.name, Value: collection.Select(mode, e.value, e.priority)}
	}
	return result, nil
}

// Clone returns a deep copy. Values themselves are copied by assignment.
func (pl *PriorityList[V]) Clone() *PriorityList[V] {
	c := &PriorityList[V]{
		items:     dict.NewSimpleDict[*entry[V]](),
		order:     make([]*entry[V], len(pl.order)),
		serial:    pl.serial,
		sorted:    pl.sorted,
		fifo:      pl.fifo,
		iterating: pl.iterating,
		cursor:    pl.cursor,
		reseated:  pl.reseated,
	}
	for i, e := range pl.order {
		cp := *e
		c.order[i] = &cp
		c.items.Put(cp.name, &cp)
	}
	return c
}

// Merge inserts every entry of other in other's insertion order.
func (pl *PriorityList[V]) Merge(other *PriorityList[V]) {
	for _, r := range other.Export() {
		pl.Insert(r.Name, r.Data, r.Priority)
	}
}

// Export returns every entry in insertion order, where an overwrite counts as
// a new insertion.
func (pl *PriorityList[V]) Export() []collection.Record[V] {
	bySerial := slices.Clone(pl.order)
	slices.SortFunc(bySerial, func(a, b *entry[V]) int {
		return cmp.Compare(a.serial, b.serial)
	})
	result := make([]collection.Record[V], len(bySerial))
	for i, e := range bySerial {
		result[i] = collection.Record[V]{Name: e.name, Data: e.value, Priority: e.priority}
	}
	return result
}

func (pl *PriorityList[V]) Import(records []collection.Record[V]) {
	for _, r := range records {
		pl.Insert(r.Name, r.Data, r.Priority)
	}
}

func (pl *PriorityList[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(pl.Export())
}

// UnmarshalJSON replaces the content with the decoded records. Every record
// needs a name; a missing priority means DefaultPriority. The tie-break mode
// is not part of the encoding and is kept.
func (pl *PriorityList[V]) UnmarshalJSON(data []byte) error {
	records, err := collection.DecodeRecords[V](data, collection.DecodeOptions{
		Named:           true,
		DefaultPriority: DefaultPriority,
	})
	if err != nil {
		return err
	}
	pl.Clear()
	pl.Import(records)
	return nil
}

func (pl *PriorityList[V]) index() dict.Dict[*entry[V]] {
	if pl.items == nil {
		pl.items = dict.NewSimpleDict[*entry[V]]()
	}
	return pl.items
}
