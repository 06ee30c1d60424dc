package fastpq

import (
	"encoding/json"
	"math/rand"
	"slices"
	"testing"

	"prioq/pkg/datastruct/collection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQueue() *FastPriorityQueue[string] {
	q := New[string]()
	q.Insert("test3", -1)
	q.Insert("test5", -10)
	q.Insert("test1", 5)
	q.Insert("test2", 2)
	q.Insert("test4", -1)
	q.Insert("test6", -10)
	return q
}

var sampleOrder = []string{"test1", "test2", "test3", "test4", "test5", "test6"}

func drain[T comparable](t *testing.T, q *FastPriorityQueue[T]) []T {
	t.Helper()
	var out []T
	for !q.IsEmpty() {
		v, err := q.Extract()
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

func walk[T comparable](q *FastPriorityQueue[T]) []T {
	var out []T
	for q.Rewind(); q.Valid(); q.Next() {
		item, _ := q.CurrentItem()
		out = append(out, item.Data)
	}
	return out
}

func TestFastPriorityQueue_Extract(t *testing.T) {
	q := sampleQueue()
	assert.Equal(t, 6, q.Count())
	assert.Equal(t, sampleOrder, drain(t, q))
	assert.Equal(t, 0, q.Count())

	_, err := q.Extract()
	assert.ErrorIs(t, err, collection.ErrEmpty)
	assert.Equal(t, 0, q.Count())
}

func TestFastPriorityQueue_ZeroPriority(t *testing.T) {
	q := New[string]()
	q.Insert("a", 0)
	q.Insert("b", 1)
	assert.Equal(t, []string{"b", "a"}, walk(q))
	assert.Equal(t, []string{"b", "a"}, slices.Collect(q.All()))
}

func TestFastPriorityQueue_NegativeOnly(t *testing.T) {
	q := New[string]()
	q.Insert("low", -7)
	q.Insert("high", -2)
	q.Insert("mid", -5)
	assert.Equal(t, []string{"high", "mid", "low"}, drain(t, q))
}

func TestFastPriorityQueue_IterateNonDestructive(t *testing.T) {
	q := sampleQueue()
	assert.Equal(t, sampleOrder, walk(q))
	assert.Equal(t, sampleOrder, walk(q))
	assert.Equal(t, 6, q.Count())
	assert.Equal(t, sampleOrder, slices.Collect(q.All()))
	assert.Equal(t, 6, q.Count())
}

func TestFastPriorityQueue_ExtractionMode(t *testing.T) {
	q := sampleQueue()
	assert.Equal(t, collection.ExtractData, q.ExtractionMode())

	require.NoError(t, q.SetExtractionMode(collection.ExtractPriority))
	assert.Equal(t, []any{5, 2, -1, -1, -10, -10}, q.ToArray())

	require.NoError(t, q.SetExtractionMode(collection.ExtractBoth))
	q.Rewind()
	cur, err := q.Current()
	require.NoError(t, err)
	assert.Equal(t, collection.Item[string]{Data: "test1", Priority: 5}, cur)

	v, err := q.Poll()
	require.NoError(t, err)
	assert.Equal(t, collection.Item[string]{Data: "test1", Priority: 5}, v)

	assert.ErrorIs(t, q.SetExtractionMode(collection.ExtractMode(0)), collection.ErrInvalidArgument)
	assert.Equal(t, collection.ExtractBoth, q.ExtractionMode())

	require.NoError(t, q.SetExtractionMode(collection.ExtractData))
	assert.Equal(t, []any{"test2", "test3", "test4", "test5", "test6"}, q.ToArray())
	assert.Equal(t, 5, q.Count())
}

func TestFastPriorityQueue_Remove(t *testing.T) {
	q := sampleQueue()
	assert.True(t, q.Remove("test1"))
	assert.False(t, q.HasPriority(5))
	assert.True(t, q.Remove("test5"))
	assert.False(t, q.Remove("test5"))
	assert.False(t, q.Remove("missing"))
	assert.Equal(t, 4, q.Count())
	assert.Equal(t, []string{"test2", "test3", "test4", "test6"}, drain(t, q))
}

func TestFastPriorityQueue_RemoveRecomputesMax(t *testing.T) {
	q := New[string]()
	q.Insert("a", 10)
	q.Insert("b", 3)
	q.Insert("c", 7)
	require.True(t, q.Remove("a"))
	v, err := q.Extract()
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestFastPriorityQueue_RemoveFirstOfDuplicates(t *testing.T) {
	q := New[string]()
	q.Insert("x", 1)
	q.Insert("x", 4)
	q.Insert("y", 4)
	require.True(t, q.Remove("x"))
	require.NoError(t, q.SetExtractionMode(collection.ExtractBoth))
	assert.Equal(t, []any{
		collection.Item[string]{Data: "y", Priority: 4},
		collection.Item[string]{Data: "x", Priority: 1},
	}, q.ToArray())
}

func TestFastPriorityQueue_RemoveCurrentDuringIteration(t *testing.T) {
	q := sampleQueue()
	var visited []string
	for q.Rewind(); q.Valid(); q.Next() {
		item, err := q.CurrentItem()
		require.NoError(t, err)
		visited = append(visited, item.Data)
		if item.Data == "test3" || item.Data == "test5" || item.Data == "test6" {
			require.True(t, q.Remove(item.Data))
		}
	}
	assert.Equal(t, sampleOrder, visited)
	assert.Equal(t, []string{"test1", "test2", "test4"}, drain(t, q))
}

func TestFastPriorityQueue_RemoveEverythingDuringIteration(t *testing.T) {
	q := sampleQueue()
	var visited []string
	for q.Rewind(); q.Valid(); q.Next() {
		item, _ := q.CurrentItem()
		visited = append(visited, item.Data)
		q.Remove(item.Data)
	}
	assert.Equal(t, sampleOrder, visited)
	assert.True(t, q.IsEmpty())
}

func TestFastPriorityQueue_RemoveBeforeCursor(t *testing.T) {
	q := New[string]()
	q.Insert("a", 1)
	q.Insert("b", 1)
	q.Insert("c", 1)
	q.Insert("d", 1)

	q.Rewind()
	q.Next()
	q.Next()
	item, _ := q.CurrentItem()
	require.Equal(t, "c", item.Data)

	require.True(t, q.Remove("a"))
	item, _ = q.CurrentItem()
	assert.Equal(t, "c", item.Data)
	q.Next()
	item, _ = q.CurrentItem()
	assert.Equal(t, "d", item.Data)
	q.Next()
	assert.False(t, q.Valid())
}

func TestFastPriorityQueue_RemoveAfterCursor(t *testing.T) {
	q := New[string]()
	q.Insert("a", 2)
	q.Insert("b", 2)
	q.Insert("c", 2)
	q.Insert("d", 1)

	q.Rewind()
	require.True(t, q.Remove("c"))
	require.True(t, q.Remove("d"))
	var visited []string
	for ; q.Valid(); q.Next() {
		item, _ := q.CurrentItem()
		visited = append(visited, item.Data)
	}
	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestFastPriorityQueue_RemoveReseatsAcrossBuckets(t *testing.T) {
	q := New[string]()
	q.Insert("a", 3)
	q.Insert("b", 2)
	q.Insert("c", 1)

	q.Rewind()
	q.Next()
	item, _ := q.CurrentItem()
	require.Equal(t, "b", item.Data)

	// b was alone in its bucket; c slides under the cursor
	require.True(t, q.Remove("b"))
	item, err := q.CurrentItem()
	require.NoError(t, err)
	assert.Equal(t, "c", item.Data)
	q.Next()
	item, _ = q.CurrentItem()
	assert.Equal(t, "c", item.Data)
	q.Next()
	assert.False(t, q.Valid())
}

func TestFastPriorityQueue_InsertDuringIteration(t *testing.T) {
	q := New[string]()
	q.Insert("a", 2)
	q.Insert("b", 1)

	var visited []string
	for q.Rewind(); q.Valid(); q.Next() {
		item, _ := q.CurrentItem()
		visited = append(visited, item.Data)
		if item.Data == "a" {
			q.Insert("late-1", 1)
			q.Insert("new-priority", 9)
		}
	}
	assert.Equal(t, []string{"a", "b", "late-1"}, visited)
	assert.Equal(t, []string{"new-priority", "a", "b", "late-1"}, walk(q))
}

func TestFastPriorityQueue_CurrentOnEmpty(t *testing.T) {
	q := New[int]()
	q.Rewind()
	assert.False(t, q.Valid())
	_, err := q.Current()
	assert.ErrorIs(t, err, collection.ErrEmpty)
	_, err = q.Poll()
	assert.ErrorIs(t, err, collection.ErrEmpty)
	q.Next()
	assert.False(t, q.Valid())
}

func TestFastPriorityQueue_ContainsHasPriority(t *testing.T) {
	q := sampleQueue()
	assert.True(t, q.Contains("test4"))
	assert.False(t, q.Contains("test9"))
	assert.True(t, q.HasPriority(-10))
	assert.False(t, q.HasPriority(0))
}

func TestFastPriorityQueue_Clone(t *testing.T) {
	q := sampleQueue()
	q.Rewind()
	q.Next()
	c := q.Clone()

	assert.Equal(t, sampleOrder, drain(t, c))
	assert.Equal(t, 6, q.Count())
	item, _ := q.CurrentItem()
	assert.Equal(t, "test2", item.Data)
}

func TestFastPriorityQueue_Clear(t *testing.T) {
	q := sampleQueue()
	require.NoError(t, q.SetExtractionMode(collection.ExtractPriority))
	q.Clear()
	assert.True(t, q.IsEmpty())
	assert.False(t, q.Valid())
	assert.Equal(t, collection.ExtractPriority, q.ExtractionMode())
	q.Insert("x", 1)
	assert.Equal(t, []any{1}, q.ToArray())
}

func TestFastPriorityQueue_ZeroValue(t *testing.T) {
	var q FastPriorityQueue[string]
	q.Insert("x", 3)
	assert.Equal(t, []any{"x"}, q.ToArray())
}

func TestFastPriorityQueue_OrderProperty(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	q := New[int]()
	priorities := make(map[int]int)
	for i := 0; i < 400; i++ {
		p := r.Intn(9) - 4
		priorities[i] = p
		q.Insert(i, p)
	}
	prev, prevPriority := -1, 1<<30
	for _, v := range walk(q) {
		p := priorities[v]
		require.LessOrEqual(t, p, prevPriority)
		if p == prevPriority {
			require.Greater(t, v, prev)
		}
		prev, prevPriority = v, p
	}
}

func TestFastPriorityQueue_CountProperty(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	q := New[int]()
	expected := 0
	for i := 0; i < 500; i++ {
		switch r.Intn(4) {
		case 0, 1:
			q.Insert(r.Intn(40), r.Intn(6))
			expected++
		case 2:
			if q.Remove(r.Intn(40)) {
				expected--
			}
		case 3:
			if _, err := q.Extract(); err == nil {
				expected--
			}
		}
		require.Equal(t, expected, q.Count())
	}
}

func TestFastPriorityQueue_ExportImport(t *testing.T) {
	q := sampleQueue()
	exported := q.Export()
	assert.Equal(t, collection.Record[string]{Data: "test3", Priority: -1}, exported[0])
	assert.Equal(t, collection.Record[string]{Data: "test6", Priority: -10}, exported[5])

	restored := New[string]()
	restored.Import(exported)
	assert.Equal(t, drain(t, sampleQueue()), drain(t, restored))
}

func TestFastPriorityQueue_JSON(t *testing.T) {
	data, err := json.Marshal(sampleQueue())
	require.NoError(t, err)

	restored := New[string]()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, sampleOrder, drain(t, restored))

	require.NoError(t, json.Unmarshal([]byte(`[{"data":"p"},{"data":"q","priority":0}]`), restored))
	assert.Equal(t, []string{"p", "q"}, drain(t, restored))

	assert.ErrorIs(t, restored.UnmarshalJSON([]byte(`"nope"`)), collection.ErrCorruptData)
}

func TestFastPriorityQueue_InterfaceData(t *testing.T) {
	q := New[any]()
	q.Insert([]int{1}, 2)
	q.Insert(7, 1)

	assert.Panics(t, func() { q.Contains([]int{1}) })
	assert.Panics(t, func() { q.Remove([]int{2}) })

	v, err := q.Extract()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
	assert.True(t, q.Contains(7))
	assert.True(t, q.Remove(7))
}
