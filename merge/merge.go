package merge

import (
	"iter"

	"github.com/navijation/njheap/util/heap"
	"github.com/pkg/errors"
)

type SortedArgs[T any] struct {
	// Each source must already be sorted by Compare.
	Sources []iter.Seq2[T, error]
	Compare func(a, b T) int
	// Emit only the first of a run of equal items. Since ties favor later
	// sources, the latest source wins.
	Dedupe bool
}

// Sorted merges sorted sources into a single sorted sequence. The first error
// produced by a source is yielded once and ends the merge.
func Sorted[T any](args SortedArgs[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		mux, err := newSourceMux(args)
		if err != nil {
			yield(zero, err)
			return
		}
		defer mux.Stop()

		for _, src := range args.Sources {
			if err := mux.AddSource(src); err != nil {
				yield(zero, err)
				return
			}
		}

		for {
			item, hasNext, err := mux.Next()
			if err != nil {
				yield(zero, err)
				return
			}
			if !hasNext {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

type sourceMuxEntry[T any] struct {
	current      T
	sourceNumber int
	next         func() (T, error, bool)
}

type sourceMux[T any] struct {
	heap        heap.Heap[sourceMuxEntry[T]]
	compare     func(a, b T) int
	dedupe      bool
	sourceCount int
	stops       []func()
	last        T
	lastIsSet   bool
}

func newSourceMux[T any](args SortedArgs[T]) (*sourceMux[T], error) {
	if args.Compare == nil {
		return nil, errors.Wrap(heap.ErrInvalidArgument, "merge requires a comparator")
	}

	entries, err := heap.NewHeap(len(args.Sources), func(a, b sourceMuxEntry[T]) int {
		// lower items first; on ties later sources first
		if c := args.Compare(a.current, b.current); c != 0 {
			return c
		}
		return b.sourceNumber - a.sourceNumber
	})
	if err != nil {
		return nil, err
	}

	return &sourceMux[T]{
		heap:    entries,
		compare: args.Compare,
		dedupe:  args.Dedupe,
	}, nil
}

func (me *sourceMux[T]) AddSource(src iter.Seq2[T, error]) error {
	next, stop := iter.Pull2(src)
	me.stops = append(me.stops, stop)

	sourceNumber := me.sourceCount
	me.sourceCount++

	item, err, exists := next()
	if err != nil {
		return errors.Wrapf(err, "source %d", sourceNumber)
	}
	if !exists {
		return nil
	}

	me.heap.Insert(sourceMuxEntry[T]{
		current:      item,
		sourceNumber: sourceNumber,
		next:         next,
	})
	return nil
}

func (me *sourceMux[T]) Next() (out T, hasNext bool, _ error) {
	for !me.heap.IsEmpty() {
		entry, err := me.heap.ExtractMin()
		if err != nil {
			return out, false, err
		}

		item, err, exists := entry.next()
		if err != nil {
			return out, false, errors.Wrapf(err, "source %d", entry.sourceNumber)
		}
		if exists {
			me.heap.Insert(sourceMuxEntry[T]{
				current:      item,
				sourceNumber: entry.sourceNumber,
				next:         entry.next,
			})
		}

		if me.dedupe && me.lastIsSet && me.compare(entry.current, me.last) == 0 {
			continue
		}

		me.last = entry.current
		me.lastIsSet = true
		return entry.current, true, nil
	}

	return out, false, nil
}

func (me *sourceMux[T]) Stop() {
	for _, stop := range me.stops {
		stop()
	}
	me.stops = nil
	me.heap.Clear()
}
