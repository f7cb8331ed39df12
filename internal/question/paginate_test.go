package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ints(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateBounds(t *testing.T) {
	for _, length := range []int{0, 1, 9, 10, 11, 25, 100} {
		seq := ints(length)
		for page := 1; page <= 12; page++ {
			want := length - PageSize*(page-1)
			if want < 0 {
				want = 0
			}
			if want > PageSize {
				want = PageSize
			}
			assert.Len(t, Paginate(seq, page), want, "length=%d page=%d", length, page)
		}
	}
}

func TestPaginateReconstructsSequence(t *testing.T) {
	for _, length := range []int{1, 10, 11, 37} {
		seq := ints(length)
		pages := (length + PageSize - 1) / PageSize

		var joined []int
		for page := 1; page <= pages; page++ {
			joined = append(joined, Paginate(seq, page)...)
		}
		assert.Equal(t, seq, joined, "length=%d", length)
	}
}

func TestPaginateOutOfRange(t *testing.T) {
	seq := ints(11)

	assert.Equal(t, []int{10}, Paginate(seq, 2))
	assert.Empty(t, Paginate(seq, 3))
	assert.NotNil(t, Paginate(seq, 3))
	assert.Empty(t, Paginate(seq, 0))
	assert.Empty(t, Paginate(seq, -4))
}
