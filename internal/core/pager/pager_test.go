package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		size     int
		expected int
	}{
		{name: "empty list", total: 0, size: 8, expected: 1},
		{name: "exact fit", total: 8, size: 8, expected: 1},
		{name: "one over", total: 9, size: 8, expected: 2},
		{name: "twenty by eight", total: 20, size: 8, expected: 3},
		{name: "zero size treated as one", total: 3, size: 0, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalPages(tt.total, tt.size))
		})
	}
}

func TestNextPrevBoundaries(t *testing.T) {
	p := Pager{Page: 1, Size: 8}
	total := 20

	assert.False(t, p.Prev(), "prev on page 1 is a no-op")
	assert.Equal(t, 1, p.Page)

	assert.True(t, p.Next(total))
	assert.True(t, p.Next(total))
	assert.Equal(t, 3, p.Page)

	assert.False(t, p.Next(total), "next on the last page is a no-op")
	assert.Equal(t, 3, p.Page)

	start, end := p.Bounds(total)
	assert.Equal(t, 16, start)
	assert.Equal(t, 20, end)
}

func TestResizeClampsPage(t *testing.T) {
	p := Pager{Page: 3, Size: 8}
	p.Resize(20, 10)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.Size)

	p.Resize(0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.Size)
}

func TestView(t *testing.T) {
	p := Pager{Page: 1, Size: 8}

	v := p.View(5)
	assert.True(t, v.Hidden)
	assert.False(t, v.HasPrev)
	assert.False(t, v.HasNext)
	assert.Equal(t, 1, v.TotalPages)

	v = p.View(20)
	assert.False(t, v.Hidden)
	assert.False(t, v.HasPrev)
	assert.True(t, v.HasNext)

	p.Last(20)
	v = p.View(20)
	assert.Equal(t, 3, v.Page)
	assert.True(t, v.HasPrev)
	assert.False(t, v.HasNext)
	assert.Equal(t, 16, v.Start)
	assert.Equal(t, 20, v.End)
}

func TestFromLayout(t *testing.T) {
	tests := []struct {
		name     string
		m        Measurement
		previous int
		expected int
	}{
		{name: "unmeasured list keeps previous", m: Measurement{}, previous: 5, expected: 5},
		{name: "unmeasured list without previous", m: Measurement{}, previous: 0, expected: DefaultPageSize},
		{name: "unmeasured row", m: Measurement{ListHeight: 400}, expected: DefaultPageSize},
		{name: "rows and gaps", m: Measurement{ListHeight: 392, ItemHeight: 40, Gap: 8}, expected: 8},
		{name: "floors partial row", m: Measurement{ListHeight: 100, ItemHeight: 30}, expected: 3},
		{name: "never below one", m: Measurement{ListHeight: 10, ItemHeight: 40, Gap: 8}, expected: 1},
		{name: "terminal rows", m: Measurement{ListHeight: 17, ItemHeight: 1}, expected: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromLayout(tt.m, tt.previous))
		})
	}
}

func TestSizeProviders(t *testing.T) {
	assert.Equal(t, 4, FixedSize(4).PageSize())
	assert.Equal(t, 1, FixedSize(0).PageSize())
	assert.Equal(t, 6, SizeFunc(func() int { return 6 }).PageSize())
}
