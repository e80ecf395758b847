package iterable

import (
	"errors"
	"io"
	"iter"
)

// Iterator returns items in a collection with every call to Next().
// The error will be set to io.EOF when the iterator is complete.
type Iterator[T any] interface {
	Next() (T, error)
}

type iterator[T any] struct {
	next func() (T, error)
}

func (it *iterator[T]) Next() (T, error) {
	return it.next()
}

func NewIterator[T any](next func() (T, error)) Iterator[T] {
	return &iterator[T]{next}
}

// From iterates over a slice.
func From[T any](items []T) Iterator[T] {
	i := 0
	return NewIterator(func() (T, error) {
		if i >= len(items) {
			var zero T
			return zero, io.EOF
		}
		item := items[i]
		i++
		return item, nil
	})
}

// FromSeq2 adapts a range-over-func sequence of (item, error) pairs. The
// first non-nil error ends iteration.
func FromSeq2[T any](seq iter.Seq2[T, error]) Iterator[T] {
	next, stop := iter.Pull2(seq)
	done := false
	return NewIterator(func() (T, error) {
		var zero T
		if done {
			return zero, io.EOF
		}
		item, err, ok := next()
		if !ok {
			done = true
			stop()
			return zero, io.EOF
		}
		if err != nil {
			done = true
			stop()
			return zero, err
		}
		return item, nil
	})
}

func Collect[T any](it Iterator[T]) ([]T, error) {
	var items []T
	for {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Seq2 adapts an Iterator to a range-over-func sequence. A non-EOF error is
// yielded once and ends the sequence.
func Seq2[T any](it Iterator[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := it.Next()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(item, err)
				}
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
