package app

import (
	"fmt"
	"strings"

	"github.com/dshills/adreel/internal/input/keymap"
	"github.com/dshills/adreel/internal/overlay"
	"github.com/dshills/adreel/internal/term"
	"github.com/dshills/adreel/internal/timeline"
)

// Timeline pixels covered by one terminal cell.
const (
	cellWidth  = 4
	cellHeight = 10
)

// minCanvasRows is the smallest canvas the layout gives the overlay.
const minCanvasRows = 3

// regions splits the screen: the canvas on top, the timeline below it
// and a status line on the last row.
type regions struct {
	canvas    term.Area
	timeline  term.Viewport
	statusRow int
	width     int
}

func computeRegions(width, height int, scrollX float64) regions {
	status := max(height-1, 0)
	canvasRows := max(minCanvasRows, status/3)
	canvasRows = min(canvasRows, status)
	return regions{
		canvas: term.Area{Col: 0, Row: 0, Width: width, Height: canvasRows},
		timeline: term.Viewport{
			Col:        0,
			Row:        canvasRows,
			Width:      width,
			Height:     max(status-canvasRows, 0),
			CellWidth:  cellWidth,
			CellHeight: cellHeight,
			ScrollX:    scrollX,
		},
		statusRow: status,
		width:     width,
	}
}

// render pushes host state into the components and paints the screen.
func (app *Application) render() {
	timer := StartTimer()
	defer func() { app.metrics.RecordRender(timer.Elapsed()) }()

	w, h := app.term.Size()
	app.regions = computeRegions(w, h, app.scrollX)
	r := app.regions

	items := app.store.Items()
	l := app.surface.Render(timeline.Props{
		Items:       items,
		CurrentTime: app.currentTime,
		Duration:    app.duration(),
		SelectedID:  app.selected,
	})

	app.overlay.SetContainer(overlay.Container{
		Left:   float64(r.canvas.Col),
		Top:    float64(r.canvas.Row),
		Width:  float64(r.canvas.Width),
		Height: float64(r.canvas.Height),
	})
	app.overlay.SetProps(items, app.selected)

	app.painter.Clear()
	app.painter.Canvas(r.canvas, app.overlay.Layout())
	app.painter.Timeline(r.timeline, l)
	app.painter.Status(r.statusRow, r.width, app.statusText())
	app.term.Show()
}

func (app *Application) statusText() string {
	var b strings.Builder
	if app.clock.Playing() {
		b.WriteString("▶ ")
	} else {
		b.WriteString("❚❚ ")
	}
	fmt.Fprintf(&b, "frame %d/%d  clips %d", app.currentTime, app.duration(), app.store.Len())
	if id, draft, ok := app.overlay.Editing(); ok {
		fmt.Fprintf(&b, "  editing %s: %q", shortID(id), draft)
	} else if app.selected != "" {
		fmt.Fprintf(&b, "  selected %s", shortID(app.selected))
	}
	b.WriteString("  │")
	for _, h := range []struct{ action, label string }{
		{keymap.ActionAddText, "text"},
		{keymap.ActionTogglePlayback, "play"},
		{keymap.ActionScrollLeft, "scroll"},
		{keymap.ActionQuit, "quit"},
	} {
		if chord := app.keymap.Hint(h.action); chord != "" {
			fmt.Fprintf(&b, " %s %s ", chord, h.label)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
