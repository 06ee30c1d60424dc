package dict

// Dict is a string keyed map.
type Dict[V any] interface {
	Put(key string, value V) int
	Get(key string) (V, bool)
	Remove(key string) int
	Clear()
	Len() int
}
