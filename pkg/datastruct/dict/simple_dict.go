package dict

// SimpleDict is a map backed Dict without locking.
type SimpleDict[V any] struct {
	store map[string]V
}

func NewSimpleDict[V any]() *SimpleDict[V] {
	return &SimpleDict[V]{store: make(map[string]V)}
}

// Put returns 1 when key is new and 0 when an existing value was replaced.
func (s *SimpleDict[V]) Put(key string, value V) int {
	_, exists := s.store[key]
	s.store[key] = value
	if exists {
		return 0
	}
	return 1
}

func (s *SimpleDict[V]) Get(key string) (V, bool) {
	val, ok := s.store[key]
	return val, ok
}

func (s *SimpleDict[V]) Remove(key string) int {
	_, exists := s.store[key]
	delete(s.store, key)
	if exists {
		return 1
	}
	return 0
}

func (s *SimpleDict[V]) Clear() {
	clear(s.store)
}

func (s *SimpleDict[V]) Len() int {
	return len(s.store)
}
