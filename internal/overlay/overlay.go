// Package overlay implements on-canvas text placement and inline editing.
//
// Text clips are positioned in percent space relative to the canvas. A
// press on a text item selects it and drags it; each move places the
// item's top-left corner under the pointer, clamped so the item stays on
// the canvas. A double click switches the item into editing, which holds a
// working copy of the text until the confirm key or loss of focus commits
// it.
//
// Dragging and editing are exclusive. While a drag is in flight an edit
// request is refused, and a press on the item being edited does not start
// a drag.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/logging"
)

// ErrMissingCallback indicates a required host callback is nil.
var ErrMissingCallback = errors.New("missing callback")

// State is the overlay's interaction state.
type State uint8

const (
	// StateIdle means no item is being dragged or edited.
	StateIdle State = iota
	// StateDragging means an item follows the pointer.
	StateDragging
	// StateEditing means an item's text is being edited.
	StateEditing
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Container is the canvas rectangle in pointer coordinates.
type Container struct {
	Left, Top, Width, Height float64
}

// Config configures the overlay.
type Config struct {
	// MaxPercent is the largest x or y an item may be placed at.
	MaxPercent float64
	// CharWidth and LineHeight size an item's hit box in pointer units.
	CharWidth  float64
	LineHeight float64
	// ConfirmKey commits an edit.
	ConfirmKey key.Key
	// Click configures double-click detection.
	Click mouse.Config
}

// DefaultConfig returns the standard overlay configuration.
func DefaultConfig() Config {
	return Config{
		MaxPercent: 90,
		CharWidth:  1,
		LineHeight: 1,
		ConfirmKey: key.KeyEnter,
		Click:      mouse.DefaultConfig(),
	}
}

// Callbacks are the host functions the overlay reports changes through.
type Callbacks struct {
	UpdateItem func(id string, p clip.Patch)
	Select     func(id string)
}

// Overlay manages the text items drawn on one canvas.
// It is not safe for concurrent use.
type Overlay struct {
	cfg       Config
	cb        Callbacks
	container Container
	focus     *focus.Tracker
	clicks    *mouse.ClickCounter

	items    []*clip.Clip
	selected string

	state  State
	active string
	draft  []rune

	logger *slog.Logger
}

// New creates an overlay. tracker is shared with the timeline surface so
// that the delete key is ignored while text is being edited.
func New(cfg Config, cb Callbacks, tracker *focus.Tracker, logger *slog.Logger) (*Overlay, error) {
	if cb.UpdateItem == nil || cb.Select == nil {
		return nil, fmt.Errorf("overlay: %w", ErrMissingCallback)
	}
	if cfg.MaxPercent <= 0 || cfg.MaxPercent > 100 {
		cfg.MaxPercent = DefaultConfig().MaxPercent
	}
	if cfg.ConfirmKey == key.KeyNone {
		cfg.ConfirmKey = key.KeyEnter
	}
	if tracker == nil {
		tracker = focus.NewTracker()
	}
	return &Overlay{
		cfg:    cfg,
		cb:     cb,
		focus:  tracker,
		clicks: mouse.NewClickCounter(cfg.Click),
		logger: logging.WithComponent(logger, "overlay"),
	}, nil
}

// SetContainer records the canvas rectangle.
func (o *Overlay) SetContainer(c Container) {
	o.container = c
}

// SetProps records the clips visible on the canvas and the selection.
// Only text clips are kept. If the item being edited disappears, editing
// ends without a commit.
func (o *Overlay) SetProps(items []*clip.Clip, selectedID string) {
	o.items = o.items[:0]
	for _, c := range items {
		if c.Kind == clip.KindText {
			o.items = append(o.items, c)
		}
	}
	o.selected = selectedID

	if o.active != "" && o.find(o.active) == nil {
		o.logger.Debug("active item removed", "clip_id", o.active, "state", o.state)
		if o.state == StateEditing {
			o.focus.Release(o.editTarget())
		}
		o.reset()
	}
}

// State returns the interaction state.
func (o *Overlay) State() State {
	return o.state
}

// Editing returns the item being edited and its working text.
func (o *Overlay) Editing() (id, draft string, ok bool) {
	if o.state != StateEditing {
		return "", "", false
	}
	return o.active, string(o.draft), true
}

func (o *Overlay) find(id string) *clip.Clip {
	for _, c := range o.items {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (o *Overlay) reset() {
	o.state = StateIdle
	o.active = ""
	o.draft = nil
}

func (o *Overlay) editTarget() focus.Target {
	return focus.Target{ID: "overlay:" + o.active, Kind: focus.KindTextEntry}
}

// clampPercent maps a pointer coordinate to a percentage of span,
// clamped to [0, max].
func clampPercent(pointer, origin, span, maxPercent float64) float64 {
	v := (pointer - origin) / span * 100
	return min(max(v, 0), maxPercent)
}

// Position converts a pointer position to a clamped percent placement.
func (o *Overlay) Position(pos mouse.Position) (x, y float64, ok bool) {
	c := o.container
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0, false
	}
	x = clampPercent(float64(pos.X), c.Left, c.Width, o.cfg.MaxPercent)
	y = clampPercent(float64(pos.Y), c.Top, c.Height, o.cfg.MaxPercent)
	return x, y, true
}

// HandleMouse routes a pointer event. It reports whether the overlay
// consumed it.
func (o *Overlay) HandleMouse(ev mouse.Event) bool {
	switch ev.Action {
	case mouse.ActionPress:
		if ev.Button != mouse.ButtonLeft {
			return false
		}
		return o.press(ev)
	case mouse.ActionMove:
		return o.move(ev.Position)
	case mouse.ActionRelease:
		if o.state == StateDragging {
			o.logger.Debug("drag ended", "clip_id", o.active)
			o.reset()
			return true
		}
	}
	return false
}

func (o *Overlay) press(ev mouse.Event) bool {
	item := o.ItemAt(ev.Position)
	if item == nil {
		o.clicks.Reset()
		if o.state == StateEditing {
			o.focus.Blur()
		}
		return false
	}

	if o.state == StateEditing && o.active == item.ID {
		return true
	}

	count := o.clicks.Record(ev.Position, ev.Timestamp)
	if count >= int(mouse.ClickDouble) && o.state == StateIdle {
		return o.BeginEdit(item.ID)
	}

	if o.state == StateEditing {
		o.focus.Blur()
	}
	o.cb.Select(item.ID)
	o.selected = item.ID
	o.state = StateDragging
	o.active = item.ID
	o.logger.Debug("drag started", "clip_id", item.ID)
	return true
}

func (o *Overlay) move(pos mouse.Position) bool {
	if o.state != StateDragging {
		return false
	}
	item := o.find(o.active)
	if item == nil {
		return false
	}
	x, y, ok := o.Position(pos)
	if !ok {
		return true
	}
	o.cb.UpdateItem(item.ID, clip.Patch{Style: item.Style.WithPosition(x, y)})
	return true
}

// BeginEdit switches id into editing with a working copy of its text.
// It is refused while a drag is in flight.
func (o *Overlay) BeginEdit(id string) bool {
	if o.state == StateDragging {
		o.logger.Debug("edit refused during drag", "clip_id", id)
		return false
	}
	item := o.find(id)
	if item == nil {
		return false
	}
	if o.state == StateEditing {
		if o.active == id {
			return true
		}
		o.focus.Blur()
	}

	o.state = StateEditing
	o.active = id
	o.draft = []rune(item.Content)
	o.clicks.Reset()
	o.focus.Focus(o.editTarget(), o.commitOnBlur)
	o.logger.Debug("edit started", "clip_id", id)
	return true
}

// commitOnBlur runs when focus leaves the edited item.
func (o *Overlay) commitOnBlur() {
	if o.state == StateEditing {
		o.finishEdit()
	}
}

// Commit ends editing and pushes the working text to the host.
func (o *Overlay) Commit() bool {
	if o.state != StateEditing {
		return false
	}
	o.focus.Release(o.editTarget())
	o.finishEdit()
	return true
}

func (o *Overlay) finishEdit() {
	id, content := o.active, string(o.draft)
	o.reset()
	o.logger.Debug("edit committed", "clip_id", id)
	o.cb.UpdateItem(id, clip.Patch{Content: clip.String(content)})
}

// HandleKey edits the working text while editing. The confirm key
// commits. Every key is consumed while editing.
func (o *Overlay) HandleKey(ev key.Event) bool {
	if o.state != StateEditing {
		return false
	}
	switch {
	case ev.Is(o.cfg.ConfirmKey):
		o.Commit()
	case ev.Is(key.KeyBackspace):
		if n := len(o.draft); n > 0 {
			o.draft = o.draft[:n-1]
		}
	case ev.Is(key.KeySpace):
		o.draft = append(o.draft, ' ')
	case ev.IsChar():
		o.draft = append(o.draft, ev.Rune)
	}
	return true
}

// Attach registers the overlay's key handler with reg. Register it before
// the timeline surface so typing reaches the editor first.
func (o *Overlay) Attach(reg *listen.Registry) (release func()) {
	return reg.Add(o.HandleKey)
}
