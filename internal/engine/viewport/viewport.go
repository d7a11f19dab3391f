// Package viewport computes which part of the item list has to be rendered.
package viewport

import (
	"go.trai.ch/shelf/internal/core/domain"
	"go.trai.ch/zerr"
)

// Geometry describes the grid container and its scroll position.
// Offsets and heights share one unit, pixels for the HTTP front-end and
// terminal lines for the TUI.
type Geometry struct {
	ScrollOffset   int
	ViewportHeight int
	RowHeight      int
	ItemCount      int
	Columns        int
	BufferRows     int
}

// Validate reports malformed geometry.
func (g Geometry) Validate() error {
	checks := []struct {
		field string
		value int
		ok    bool
	}{
		{"row_height", g.RowHeight, g.RowHeight > 0},
		{"columns", g.Columns, g.Columns > 0},
		{"scroll_offset", g.ScrollOffset, g.ScrollOffset >= 0},
		{"viewport_height", g.ViewportHeight, g.ViewportHeight >= 0},
		{"item_count", g.ItemCount, g.ItemCount >= 0},
		{"buffer_rows", g.BufferRows, g.BufferRows >= 0},
	}
	for _, c := range checks {
		if !c.ok {
			return zerr.With(zerr.With(domain.ErrInvalidGeometry, "field", c.field), "value", c.value)
		}
	}
	return nil
}

// Rows returns the number of rows needed for all items.
func (g Geometry) Rows() int {
	if g.Columns <= 0 {
		return 0
	}
	return ceilDiv(g.ItemCount, g.Columns)
}

// Compute returns the index range of items to materialize, including
// BufferRows rows above and below the viewport. Scroll offsets past the
// content yield an empty range at the end of the list.
func Compute(g Geometry) (domain.VisibleRange, error) {
	if err := g.Validate(); err != nil {
		return domain.VisibleRange{}, err
	}

	startRow := max(0, g.ScrollOffset/g.RowHeight-g.BufferRows)
	endRow := min(g.Rows(), ceilDiv(g.ScrollOffset+g.ViewportHeight, g.RowHeight)+g.BufferRows)

	end := min(g.ItemCount, (endRow+1)*g.Columns)
	start := min(startRow*g.Columns, end)
	return domain.VisibleRange{Start: start, End: end}, nil
}

// TotalHeight returns the scrollable height of count items.
func TotalHeight(count, columns, rowHeight int) int {
	if columns <= 0 || rowHeight <= 0 || count <= 0 {
		return 0
	}
	return ceilDiv(count, columns) * rowHeight
}

// ColumnsFor returns how many cards of cardWidth fit into width with gap
// spacing. At least one column is always returned.
func ColumnsFor(width, cardWidth, gap int) int {
	if cardWidth+gap <= 0 {
		return 1
	}
	return max(1, (width-gap)/(cardWidth+gap))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
