package ast

// Arena is flat append-only storage addressed by 1-based indices, so the
// zero id stays free to mean "no value". Blocks, declarations, and
// variables all live in arenas and reference each other by id only; the
// ownership graph is acyclic by construction.
type Arena[T any] struct {
	data []T
}

// NewArena creates an *Arena[T] with capacity capHint; zero is allowed.
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

// Get returns the element at the 1-based index, or nil for 0 and
// out-of-range ids.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return &a.data[index-1]
}

// Slice exposes the backing storage. Callers must not mutate it.
func (a *Arena[T]) Slice() []T {
	return a.data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.data))
}
