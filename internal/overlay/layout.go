package overlay

import (
	"unicode/utf8"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/mouse"
)

// TextBox is one text item placed on the canvas.
type TextBox struct {
	ID    string
	Text  string
	Style clip.ResolvedStyle
	// X, Y, W and H are in pointer coordinates.
	X, Y, W, H float64
	Selected   bool
	Editing    bool
}

// Contains reports whether (x, y) lies inside the box.
func (b TextBox) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Layout places every text item. Items being edited show the working
// text. The order matches the props, so later boxes draw on top.
func (o *Overlay) Layout() []TextBox {
	boxes := make([]TextBox, 0, len(o.items))
	for _, c := range o.items {
		boxes = append(boxes, o.box(c))
	}
	return boxes
}

func (o *Overlay) box(c *clip.Clip) TextBox {
	st := c.Style.Resolved()
	b := TextBox{
		ID:       c.ID,
		Text:     c.Content,
		Style:    st,
		X:        o.container.Left + st.X*o.container.Width/100,
		Y:        o.container.Top + st.Y*o.container.Height/100,
		Selected: c.ID == o.selected,
	}
	if o.state == StateEditing && o.active == c.ID {
		b.Editing = true
		b.Text = string(o.draft)
	}
	n := utf8.RuneCountInString(b.Text)
	if n == 0 {
		n = 1
	}
	b.W = float64(n) * o.cfg.CharWidth
	b.H = o.cfg.LineHeight
	return b
}

// ItemAt returns the topmost text item under pos, or nil.
func (o *Overlay) ItemAt(pos mouse.Position) *clip.Clip {
	x, y := float64(pos.X), float64(pos.Y)
	for i := len(o.items) - 1; i >= 0; i-- {
		if o.box(o.items[i]).Contains(x, y) {
			return o.items[i]
		}
	}
	return nil
}
