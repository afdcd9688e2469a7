package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	p := New(0, 0, 10)
	assert.Equal(t, Page{Page: 1, Limit: 10}, p)

	unbounded := New(3, 0, 0)
	assert.Equal(t, Page{Page: 1, Limit: 0}, unbounded)
	assert.Equal(t, 0, unbounded.Offset())
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, New(1, 10, 10).Offset())
	assert.Equal(t, 20, New(3, 10, 10).Offset())
}

func TestTotalPagesIsCeil(t *testing.T) {
	for _, limit := range []int{1, 3, 7, 10, 50} {
		for total := int64(0); total <= 120; total++ {
			p := New(1, limit, 10)
			want := int(math.Ceil(float64(total) / float64(limit)))
			assert.Equal(t, want, p.TotalPages(total), "total=%d limit=%d", total, limit)
		}
	}
}

func TestTotalPagesUnbounded(t *testing.T) {
	p := New(1, 0, 0)
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(42))
}
