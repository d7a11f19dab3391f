package viewport_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/shelf/internal/engine/viewport"
)

func grid(offset, count int) viewport.Geometry {
	return viewport.Geometry{
		ScrollOffset:   offset,
		ViewportHeight: 800,
		RowHeight:      domain.RowHeight,
		ItemCount:      count,
		Columns:        5,
		BufferRows:     domain.BufferRows,
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		geo  viewport.Geometry
		want domain.VisibleRange
	}{
		{
			name: "TopOfList",
			geo:  grid(0, 200),
			want: domain.VisibleRange{Start: 0, End: 40},
		},
		{
			name: "MidScroll",
			// startRow = 31-4 = 27, endRow = ceil(10600/316)+4 = 34+4 = 38.
			geo:  grid(9800, 200),
			want: domain.VisibleRange{Start: 135, End: 195},
		},
		{
			name: "NearBottomClampedToCount",
			geo:  grid(11000, 200),
			want: domain.VisibleRange{Start: 150, End: 200},
		},
		{
			name: "PastContent",
			geo:  grid(1_000_000, 200),
			want: domain.VisibleRange{Start: 200, End: 200},
		},
		{
			name: "EmptyList",
			geo:  grid(0, 0),
			want: domain.VisibleRange{Start: 0, End: 0},
		},
		{
			name: "FewerItemsThanRow",
			geo:  grid(0, 3),
			want: domain.VisibleRange{Start: 0, End: 3},
		},
		{
			name: "SingleColumnNoBuffer",
			geo: viewport.Geometry{
				ScrollOffset:   20,
				ViewportHeight: 10,
				RowHeight:      1,
				ItemCount:      100,
				Columns:        1,
			},
			want: domain.VisibleRange{Start: 20, End: 31},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := viewport.Compute(tt.geo)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Start, got.End)
			assert.LessOrEqual(t, got.End, tt.geo.ItemCount)
		})
	}
}

func TestCompute_StartIsRowAligned(t *testing.T) {
	for offset := 0; offset < 20_000; offset += 97 {
		got, err := viewport.Compute(grid(offset, 503))
		require.NoError(t, err)
		if got.Start < got.End {
			assert.Zero(t, got.Start%5, "offset %d", offset)
		}
	}
}

func TestCompute_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*viewport.Geometry)
	}{
		{"ZeroRowHeight", func(g *viewport.Geometry) { g.RowHeight = 0 }},
		{"ZeroColumns", func(g *viewport.Geometry) { g.Columns = 0 }},
		{"NegativeOffset", func(g *viewport.Geometry) { g.ScrollOffset = -1 }},
		{"NegativeViewport", func(g *viewport.Geometry) { g.ViewportHeight = -5 }},
		{"NegativeCount", func(g *viewport.Geometry) { g.ItemCount = -1 }},
		{"NegativeBuffer", func(g *viewport.Geometry) { g.BufferRows = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid(0, 10)
			tt.mutate(&g)

			_, err := viewport.Compute(g)
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrInvalidGeometry.Error())
		})
	}
}

func TestTotalHeight(t *testing.T) {
	assert.Equal(t, 40*domain.RowHeight, viewport.TotalHeight(200, 5, domain.RowHeight))
	assert.Equal(t, 41*domain.RowHeight, viewport.TotalHeight(201, 5, domain.RowHeight))
	assert.Zero(t, viewport.TotalHeight(0, 5, domain.RowHeight))
	assert.Zero(t, viewport.TotalHeight(10, 0, domain.RowHeight))
}

func TestColumnsFor(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{width: 1280, want: 5},
		{width: 232, want: 1},
		{width: 100, want: 1},
		{width: 0, want: 1},
		{width: 1960, want: 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, viewport.ColumnsFor(tt.width, domain.CardWidth, domain.GridGap), "width %d", tt.width)
	}
	assert.Equal(t, 1, viewport.ColumnsFor(10, 0, 0))
}

func TestCompute_RowBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  domain.VisibleRange
	}{
		{"OneShortOfRow", 4, domain.VisibleRange{Start: 0, End: 4}},
		{"ExactlyOneRow", 5, domain.VisibleRange{Start: 0, End: 5}},
		{"OneIntoSecondRow", 6, domain.VisibleRange{Start: 0, End: 6}},
		{"LargeList", 10_000, domain.VisibleRange{Start: 0, End: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := viewport.Compute(grid(0, tt.count))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompute_LargeListMidScroll(t *testing.T) {
	// startRow = 1000-4 = 996, endRow = ceil(316800/316)+4 = 1007.
	got, err := viewport.Compute(grid(1000*domain.RowHeight, 10_000))
	require.NoError(t, err)
	assert.Equal(t, domain.VisibleRange{Start: 4980, End: 5040}, got)
}

func TestCompute_WindowSizeIndependentOfCount(t *testing.T) {
	g := grid(0, 0)
	maxRows := (g.ViewportHeight+g.RowHeight-1)/g.RowHeight + 2 + 2*g.BufferRows
	limit := maxRows * g.Columns

	for _, count := range []int{4, 5, 6, 200, 10_000, 1_000_000} {
		height := viewport.TotalHeight(count, g.Columns, g.RowHeight)
		for offset := 0; offset <= height; offset += max(1, height/97) {
			got, err := viewport.Compute(grid(offset, count))
			require.NoError(t, err)
			require.LessOrEqual(t, got.End-got.Start, limit, "count %d offset %d", count, offset)
			require.LessOrEqual(t, got.End, count)
		}
	}
}
