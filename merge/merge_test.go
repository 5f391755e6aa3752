package merge

import (
	"cmp"
	"fmt"
	"iter"
	"strings"
	"testing"

	"github.com/navijation/njheap/util"
	"github.com/navijation/njheap/util/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type versioned struct {
	key    string
	source string
}

func compareVersioned(a, b versioned) int {
	return strings.Compare(a.key, b.key)
}

func collect[T any](t *testing.T, seq iter.Seq2[T, error]) (out []T) {
	t.Helper()
	for item, err := range seq {
		require.NoError(t, err)
		out = append(out, item)
	}
	return out
}

func failingSource(items []int, err error) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
		yield(0, err)
	}
}

func TestSorted(t *testing.T) {
	t.Run("no sources", func(t *testing.T) {
		out := collect(t, Sorted(SortedArgs[int]{Compare: cmp.Compare[int]}))
		assert.Empty(t, out)
	})

	t.Run("one source", func(t *testing.T) {
		out := collect(t, Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{util.NoErrors(util.SeqOf(1, 2, 3))},
			Compare: cmp.Compare[int],
		}))
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("interleaved sources", func(t *testing.T) {
		var odds, evens []int
		for i := range 150 {
			if i%2 == 0 {
				evens = append(evens, i)
			} else {
				odds = append(odds, i)
			}
		}

		out := collect(t, Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{
				util.NoErrors(util.SeqOf(odds...)),
				util.NoErrors(util.SeqOf[int]()),
				util.NoErrors(util.SeqOf(evens...)),
			},
			Compare: cmp.Compare[int],
		}))
		require.Len(t, out, 150)
		for i, v := range out {
			assert.Equal(t, i, v)
		}
	})

	t.Run("ties favor later sources", func(t *testing.T) {
		out := collect(t, Sorted(SortedArgs[versioned]{
			Sources: []iter.Seq2[versioned, error]{
				util.NoErrors(util.SeqOf(versioned{"a", "first"}, versioned{"b", "first"})),
				util.NoErrors(util.SeqOf(versioned{"a", "second"}, versioned{"c", "second"})),
			},
			Compare: compareVersioned,
		}))
		assert.Equal(t, []versioned{
			{"a", "second"},
			{"a", "first"},
			{"b", "first"},
			{"c", "second"},
		}, out)
	})

	t.Run("dedupe keeps latest source", func(t *testing.T) {
		out := collect(t, Sorted(SortedArgs[versioned]{
			Sources: []iter.Seq2[versioned, error]{
				util.NoErrors(util.SeqOf(
					versioned{"all the rainbows", "src1"},
					versioned{"can you see", "src1"},
					versioned{"everybody's", "src1"},
				)),
				util.NoErrors(util.SeqOf(
					versioned{"all the rainbows", "src2"},
					versioned{"don't you know", "src2"},
					versioned{"everybody's", "src2"},
				)),
			},
			Compare: compareVersioned,
			Dedupe:  true,
		}))
		assert.Equal(t, []versioned{
			{"all the rainbows", "src2"},
			{"can you see", "src1"},
			{"don't you know", "src2"},
			{"everybody's", "src2"},
		}, out)
	})

	t.Run("dedupe within a source", func(t *testing.T) {
		out := collect(t, Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{util.NoErrors(util.SeqOf(1, 1, 2, 2, 2, 3))},
			Compare: cmp.Compare[int],
			Dedupe:  true,
		}))
		assert.Equal(t, []int{1, 2, 3}, out)
	})

	t.Run("source error", func(t *testing.T) {
		sourceErr := fmt.Errorf("disk on fire")

		var (
			items []int
			errs  []error
		)
		for item, err := range Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{
				util.NoErrors(util.SeqOf(1, 5, 9)),
				failingSource([]int{2, 3}, sourceErr),
			},
			Compare: cmp.Compare[int],
		}) {
			if err != nil {
				errs = append(errs, err)
				continue
			}
			items = append(items, item)
		}

		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], sourceErr)
		assert.Equal(t, []int{1, 2}, items)
	})

	t.Run("error on first item", func(t *testing.T) {
		sourceErr := fmt.Errorf("unreadable")
		var errs []error
		for _, err := range Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{failingSource(nil, sourceErr)},
			Compare: cmp.Compare[int],
		}) {
			errs = append(errs, err)
		}
		require.Len(t, errs, 1)
		assert.ErrorIs(t, errs[0], sourceErr)
	})

	t.Run("missing comparator", func(t *testing.T) {
		for _, err := range Sorted(SortedArgs[int]{}) {
			assert.ErrorIs(t, err, heap.ErrInvalidArgument)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		var stopped []int
		source := func(id int) iter.Seq2[int, error] {
			return func(yield func(int, error) bool) {
				defer func() { stopped = append(stopped, id) }()
				for i := range 10 {
					if !yield(i*2+id, nil) {
						return
					}
				}
			}
		}

		var out []int
		for item, err := range Sorted(SortedArgs[int]{
			Sources: []iter.Seq2[int, error]{source(0), source(1)},
			Compare: cmp.Compare[int],
		}) {
			require.NoError(t, err)
			out = append(out, item)
			if len(out) == 3 {
				break
			}
		}
		assert.Equal(t, []int{0, 1, 2}, out)
		assert.ElementsMatch(t, []int{0, 1}, stopped)
	})
}
