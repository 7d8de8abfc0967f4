package library_test

import (
	"math"
	"testing"

	"github.com/5w1tchy/smart-library-api/internal/library"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		total, skip, limit int
		page, pages        int
		hasNext, hasPrev   bool
		next, prev         *int
	}{
		{"empty", 0, 0, 100, 1, 0, false, false, nil, nil},
		{"first of three", 25, 0, 10, 1, 3, true, false, intp(10), nil},
		{"middle", 25, 10, 10, 2, 3, true, true, intp(20), intp(0)},
		{"last partial", 25, 20, 10, 3, 3, false, true, nil, intp(10)},
		{"beyond end", 25, 40, 10, 5, 3, false, true, nil, intp(30)},
		{"unaligned skip", 25, 5, 10, 1, 3, true, true, intp(15), intp(-5)},
		{"exact fit", 10, 0, 10, 1, 1, false, false, nil, nil},
		{"max skip", 1, math.MaxInt, 10, math.MaxInt/10 + 1, 1, false, true, nil, intp(math.MaxInt - 10)},
		{"max skip unit limit", 1, math.MaxInt, 1, math.MaxInt, 1, false, true, nil, intp(math.MaxInt - 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := library.Paginate(tc.total, tc.skip, tc.limit)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.pages, p.TotalPages)
			assert.Equal(t, tc.hasNext, p.HasNext)
			assert.Equal(t, tc.hasPrev, p.HasPrev)
			assert.Equal(t, tc.next, p.NextPage)
			assert.Equal(t, tc.prev, p.PrevPage)
		})
	}
}

func TestPaginate_ZeroLimitDoesNotPanic(t *testing.T) {
	p := library.Paginate(5, 0, 0)
	require.Equal(t, 1, p.Page)
	assert.Equal(t, 0, p.TotalPages)
}

func intp(n int) *int { return &n }
