package list

type node[T any] struct {
	prev  *node[T]
	next  *node[T]
	value T
}

// LinkedList is a doubly linked list. The zero value is an empty list.
type LinkedList[T any] struct {
	left  *node[T]
	right *node[T]
	size  int
}

func (l *LinkedList[T]) AddRight(val T) int {
	n := &node[T]{value: val}
	if l.right == nil {
		l.right = n
		l.left = n
	} else {
		n.prev = l.right
		l.right.next = n
		l.right = n
	}
	l.size++
	return l.size
}

func (l *LinkedList[T]) Size() int {
	return l.size
}

// RemoveFirst removes the leftmost value matching pred.
func (l *LinkedList[T]) RemoveFirst(pred func(value T) bool) (T, bool) {
	for n := l.left; n != nil; n = n.next {
		if pred(n.value) {
			l.unlink(n)
			return n.value, true
		}
	}
	var zero T
	return zero, false
}

func (l *LinkedList[T]) unlink(n *node[T]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.left = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.right = n.prev
	}
	n.prev = nil
	n.next = nil
	l.size--
}

func (l *LinkedList[T]) ForEach(fun func(idx int, value T) bool) {
	n := l.left
	for i := 0; n != nil; i++ {
		if !fun(i, n.value) {
			break
		}
		n = n.next
	}
}

// Clone copies the list structure; values are copied by assignment.
func (l *LinkedList[T]) Clone() *LinkedList[T] {
	c := &LinkedList[T]{}
	for n := l.left; n != nil; n = n.next {
		c.AddRight(n.value)
	}
	return c
}
