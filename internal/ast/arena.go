package ast

// Arena is an append-only store of nodes addressed by 1-based indices.
// Index 0 is reserved as "no node".
type Arena[T any] struct {
	data []T
}

// NewArena creates an *Arena[T] whose storage is allocated with capHint.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{
		data: make([]T, 0, capHint),
	}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	return uint32(len(a.data))
}

// Get returns the element at a 1-based index, nil for index 0.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 {
		return nil
	}
	return &a.data[index-1]
}

// Len returns the number of allocated elements.
func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
