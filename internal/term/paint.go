package term

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/adreel/internal/overlay"
	"github.com/dshills/adreel/internal/timeline"
)

// Palette colors for the parts of the screen that are not clip kinds.
var (
	colorLaneEven  = tcell.GetColor("#f9fafb")
	colorLaneOdd   = tcell.GetColor("#f3f4f6")
	colorLabel     = tcell.GetColor("#111827")
	colorPlayhead  = tcell.GetColor("#ef4444")
	colorDelete    = tcell.GetColor("#dc2626")
	colorCanvas    = tcell.GetColor("#000000")
	colorStatusBg  = tcell.GetColor("#1f2937")
	colorStatusInk = tcell.GetColor("#e5e7eb")
)

// Area is a rectangle of screen cells.
type Area struct {
	Col, Row      int
	Width, Height int
}

// Contains reports whether the cell lies inside a.
func (a Area) Contains(col, row int) bool {
	return col >= a.Col && col < a.Col+a.Width && row >= a.Row && row < a.Row+a.Height
}

// Painter draws layouts onto a screen.
type Painter struct {
	screen tcell.Screen
}

// NewPainter creates a painter for s.
func NewPainter(s tcell.Screen) *Painter {
	return &Painter{screen: s}
}

func (p *Painter) set(clip Area, col, row int, r rune, st tcell.Style) {
	if !clip.Contains(col, row) {
		return
	}
	p.screen.SetContent(col, row, r, nil, st)
}

func (p *Painter) fill(clip Area, col0, row0, col1, row1 int, st tcell.Style) {
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			p.set(clip, col, row, ' ', st)
		}
	}
}

// text writes s starting at (col, row) and stops at limit. It returns the
// column after the last rune written.
func (p *Painter) text(clip Area, col, row, limit int, s string, st tcell.Style) int {
	for _, r := range s {
		if col >= limit {
			break
		}
		p.set(clip, col, row, r, st)
		col++
	}
	return col
}

// Clear erases the whole screen.
func (p *Painter) Clear() {
	p.screen.Clear()
}

// Timeline draws a timeline layout into the viewport region.
func (p *Painter) Timeline(vp Viewport, l timeline.Layout) {
	area := Area{Col: vp.Col, Row: vp.Row, Width: vp.Width, Height: vp.Height}
	base := tcell.StyleDefault.Background(colorLaneEven).Foreground(colorLabel)
	p.fill(area, area.Col, area.Row, area.Col+area.Width, area.Row+area.Height, base)

	for _, lane := range l.Lanes {
		bg := colorLaneEven
		if lane.Index%2 == 1 {
			bg = colorLaneOdd
		}
		r0, r1 := vp.Rows(lane.Y, lane.H)
		p.fill(area, area.Col, r0, area.Col+area.Width, r1, base.Background(bg))
	}

	for _, b := range l.Clips {
		p.clipBox(vp, area, b)
	}

	col, _ := vp.ToCell(l.PlayheadX, 0)
	head := tcell.StyleDefault.Background(colorLaneEven).Foreground(colorPlayhead)
	for row := area.Row; row < area.Row+area.Height; row++ {
		p.set(area, col, row, '│', head)
	}
	p.set(area, col, area.Row, '▼', head)
}

func (p *Painter) clipBox(vp Viewport, area Area, b timeline.ClipBox) {
	fill := tcell.GetColor(b.Visual.Fill)
	border := tcell.GetColor(b.Visual.Border)
	ink := tcell.GetColor(b.Visual.Ink)

	c0, c1 := vp.Span(b.Rect.X, b.Rect.W)
	r0, r1 := vp.Rows(b.Rect.Y, b.Rect.H)
	body := tcell.StyleDefault.Background(fill).Foreground(colorLabel)
	p.fill(area, c0, r0, c1, r1, body)

	edge := tcell.StyleDefault.Background(border).Foreground(ink)
	if b.Selected {
		edge = tcell.StyleDefault.Background(ink).Foreground(fill).Bold(true)
	}
	hl0, hl1 := vp.Span(b.LeftHandle.X, b.LeftHandle.W)
	p.fill(area, hl0, r0, hl1, r1, edge)
	hr0, hr1 := vp.Span(b.RightHandle.X, b.RightHandle.W)
	p.fill(area, max(hr0, hl1), r0, hr1, r1, edge)

	limit := max(hr0, hl1)
	row := r0 + (r1-r0-1)/2
	col := p.text(area, hl1, row, limit, string(b.Visual.Icon), body.Foreground(ink).Bold(true))
	label := body
	if b.Selected {
		label = label.Bold(true)
	}
	p.text(area, col+1, row, limit, b.Label, label)

	if b.Delete != nil {
		dc, _ := vp.ToCell(b.Delete.X+b.Delete.W/2, 0)
		_, dr := vp.ToCell(0, b.Delete.Y+b.Delete.H/2)
		p.set(area, dc, dr, '×', tcell.StyleDefault.Background(colorDelete).Foreground(tcell.ColorWhite).Bold(true))
	}
}

// Canvas draws the text overlay boxes over a dark canvas. The boxes are in
// screen cells. The cursor is shown at the end of a box being edited.
func (p *Painter) Canvas(area Area, boxes []overlay.TextBox) {
	bg := tcell.StyleDefault.Background(colorCanvas)
	p.fill(area, area.Col, area.Row, area.Col+area.Width, area.Row+area.Height, bg)
	p.screen.HideCursor()

	for _, b := range boxes {
		col := int(math.Floor(b.X))
		row := int(math.Floor(b.Y))
		st := bg.Foreground(tcell.GetColor(b.Style.Color))
		if isBold(b.Style.FontWeight) {
			st = st.Bold(true)
		}
		if b.Selected {
			st = st.Underline(true)
		}
		if b.Editing {
			st = st.Reverse(true)
		}
		end := p.text(area, col, row, area.Col+area.Width, b.Text, st)
		if b.Editing && area.Contains(end, row) {
			p.screen.ShowCursor(end, row)
		}
	}
}

func isBold(weight string) bool {
	switch strings.ToLower(strings.TrimSpace(weight)) {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	default:
		return false
	}
}

// Status draws a one-line status bar across row.
func (p *Painter) Status(row, width int, text string) {
	area := Area{Col: 0, Row: row, Width: width, Height: 1}
	st := tcell.StyleDefault.Background(colorStatusBg).Foreground(colorStatusInk)
	p.fill(area, 0, row, width, row+1, st)
	p.text(area, 1, row, width, text, st)
}
