package heap

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned by NewHeap for a negative capacity hint or a nil comparator.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyHeap is returned when reading the minimum of a heap with no elements.
	ErrEmptyHeap = errors.New("heap is empty")
)
