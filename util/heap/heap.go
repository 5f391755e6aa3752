package heap

import (
	"iter"

	"github.com/pkg/errors"
)

// Heap is a binary min-heap ordered by a comparator fixed at construction.
// Elements live in a growable slice addressed from 1, so that the parent of
// i is i/2 and its children are 2i and 2i+1. Slot 0 never holds an element.
//
// A Heap is not safe for concurrent use.
type Heap[T any] struct {
	comparator func(a, b T) int
	items      []T
}

func NewHeap[T any](capacityHint int, comparator func(a, b T) int) (Heap[T], error) {
	if capacityHint < 0 {
		return Heap[T]{}, errors.Wrapf(ErrInvalidArgument, "negative capacity hint %d", capacityHint)
	}
	if comparator == nil {
		return Heap[T]{}, errors.Wrap(ErrInvalidArgument, "nil comparator")
	}

	return Heap[T]{
		comparator: comparator,
		items:      make([]T, 1, capacityHint+1),
	}, nil
}

func (me *Heap[T]) Comparator() func(a, b T) int {
	return me.comparator
}

func (me *Heap[T]) Size() int {
	return len(me.items) - 1
}

func (me *Heap[T]) IsEmpty() bool {
	return me.Size() == 0
}

// Clear removes all elements, keeping the comparator and the backing array.
func (me *Heap[T]) Clear() {
	clear(me.items[1:])
	me.items = me.items[:1]
}

func (me *Heap[T]) Peek() (out T, _ error) {
	if me.IsEmpty() {
		return out, errors.WithStack(ErrEmptyHeap)
	}
	return me.items[1], nil
}

func (me *Heap[T]) Insert(element T) {
	me.items = append(me.items, element)
	me.siftUp(me.Size())
}

// ExtractMin removes and returns the minimum element. The heap is left
// untouched when it is empty.
func (me *Heap[T]) ExtractMin() (out T, _ error) {
	if me.IsEmpty() {
		return out, errors.WithStack(ErrEmptyHeap)
	}

	out = me.items[1]

	last := me.Size()
	current := me.items[last]
	var zero T
	me.items[last] = zero
	me.items = me.items[:last]

	// the removed element was the root
	if me.IsEmpty() {
		return out, nil
	}

	me.siftDown(current)
	return out, nil
}

// Drain yields elements in ascending order, removing each one as it is
// yielded. Stopping early leaves the remaining elements in the heap.
func (me *Heap[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for !me.IsEmpty() {
			element, _ := me.ExtractMin()
			if !yield(element) {
				return
			}
		}
	}
}

func (me *Heap[T]) siftUp(index int) {
	element := me.items[index]
	for index > 1 {
		parent := index / 2
		if me.comparator(element, me.items[parent]) >= 0 {
			break
		}
		me.items[index] = me.items[parent]
		index = parent
	}
	me.items[index] = element
}

// siftDown places element at the root and moves it down until it is no
// greater than its children. Equal children resolve to the left one.
func (me *Heap[T]) siftDown(element T) {
	size := me.Size()
	index := 1
	for {
		child := 2 * index
		if child > size {
			break
		}
		if right := child + 1; right <= size && me.comparator(me.items[child], me.items[right]) > 0 {
			child = right
		}
		if me.comparator(element, me.items[child]) <= 0 {
			break
		}
		me.items[index] = me.items[child]
		index = child
	}
	me.items[index] = element
}
