package sequence

import (
	"iter"
)

// Iterator is a generic, immutable, chainable iterator for any type T.
// Iterators are lazy: nothing is evaluated until a terminal operation
// (Collect, Find, Any, All, Count, First) pulls elements.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator from a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// FromSeq wraps an existing sequence function.
func FromSeq[T any](seq iter.Seq[T]) *Iterator[T] {
	return &Iterator[T]{seq: seq}
}

// Seq returns the underlying sequence function for the iterator.
func (i *Iterator[T]) Seq() iter.Seq[T] {
	return i.seq
}

// Pull converts the iterator into a pull-style next/stop pair.
func (i *Iterator[T]) Pull() (next func() (T, bool), stop func()) {
	return iter.Pull(i.Seq())
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Find returns the first element matching the predicate, or false if not found.
// Elements after the match are never evaluated.
func (i *Iterator[T]) Find(pred func(T) bool) (T, bool) {
	var zero T
	found := false
	i.seq(func(v T) bool {
		if pred(v) {
			zero = v
			found = true
			return false
		}
		return true
	})
	return zero, found
}

// Any returns true if any element matches the predicate.
func (i *Iterator[T]) Any(pred func(T) bool) bool {
	_, found := i.Find(pred)
	return found
}

// All returns true if all elements match the predicate.
func (i *Iterator[T]) All(pred func(T) bool) bool {
	return !i.Any(func(v T) bool { return !pred(v) })
}

// First returns the first element, or false if empty.
func (i *Iterator[T]) First() (T, bool) {
	return i.Find(func(T) bool { return true })
}

// Take returns a new Iterator with the first n elements.
func (i *Iterator[T]) Take(n int) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			if n <= 0 {
				return
			}
			count := 0
			i.seq(func(v T) bool {
				count++
				return yield(v) && count < n
			})
		},
	}
}

// Count returns the number of elements in the iterator.
func (i *Iterator[T]) Count() int {
	count := 0
	i.seq(func(_ T) bool {
		count++
		return true
	})
	return count
}

// Map returns an iterator that yields mapFn(v) for each element of it.
func Map[T any, R any](it *Iterator[T], mapFn func(T) R) *Iterator[R] {
	return &Iterator[R]{
		seq: func(yield func(R) bool) {
			it.seq(func(v T) bool {
				return yield(mapFn(v))
			})
		},
	}
}

// Pair is an unordered pair of slice elements with First preceding Second.
type Pair[T any] struct {
	First, Second T
}

// Pairs yields every pair (data[i], data[j]) with i < j, in row-major order.
func Pairs[T any](data []T) *Iterator[Pair[T]] {
	return &Iterator[Pair[T]]{
		seq: func(yield func(Pair[T]) bool) {
			for i := 0; i < len(data); i++ {
				for j := i + 1; j < len(data); j++ {
					if !yield(Pair[T]{First: data[i], Second: data[j]}) {
						return
					}
				}
			}
		},
	}
}
