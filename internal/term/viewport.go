package term

import (
	"math"

	"github.com/dshills/adreel/internal/input/mouse"
)

// Viewport maps a screen region of cells onto the timeline's pixel space.
type Viewport struct {
	// Col and Row are the screen cell of the region's top-left corner.
	Col, Row int
	// Width and Height are the region size in cells.
	Width, Height int
	// CellWidth and CellHeight are the pixels one cell covers.
	CellWidth, CellHeight float64
	// ScrollX is the pixel offset of the region's left edge.
	ScrollX float64
}

// Contains reports whether the screen cell lies inside the region.
func (v Viewport) Contains(col, row int) bool {
	return col >= v.Col && col < v.Col+v.Width && row >= v.Row && row < v.Row+v.Height
}

// ToPixels converts a screen cell to the pixel at the cell's center.
func (v Viewport) ToPixels(col, row int) mouse.Position {
	x := (float64(col-v.Col)+0.5)*v.CellWidth + v.ScrollX
	y := (float64(row-v.Row) + 0.5) * v.CellHeight
	return mouse.Position{X: int(math.Floor(x)), Y: int(math.Floor(y))}
}

// ToCell converts a pixel to the screen cell covering it.
func (v Viewport) ToCell(x, y float64) (col, row int) {
	col = v.Col + int(math.Floor((x-v.ScrollX)/v.CellWidth))
	row = v.Row + int(math.Floor(y/v.CellHeight))
	return col, row
}

// Span converts a pixel extent starting at x to a cell range [from, to).
// A non-empty extent covers at least one cell.
func (v Viewport) Span(x, w float64) (from, to int) {
	from, _ = v.ToCell(x, 0)
	end, _ := v.ToCell(x+w, 0)
	to = end
	if float64(to-v.Col)*v.CellWidth+v.ScrollX < x+w {
		to++
	}
	if to <= from && w > 0 {
		to = from + 1
	}
	return from, to
}

// Rows converts a pixel extent starting at y to a row range [from, to).
func (v Viewport) Rows(y, h float64) (from, to int) {
	_, from = v.ToCell(0, y)
	_, end := v.ToCell(0, y+h)
	to = end
	if float64(to-v.Row)*v.CellHeight < y+h {
		to++
	}
	if to <= from && h > 0 {
		to = from + 1
	}
	return from, to
}

// ToMouse converts a pointer event in cells to one in timeline pixels.
func (v Viewport) ToMouse(ev mouse.Event) mouse.Event {
	ev.Position = v.ToPixels(ev.Position.X, ev.Position.Y)
	return ev
}
