package overlay

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/input/mouse"
)

type update struct {
	id    string
	patch clip.Patch
}

type fakeHost struct {
	updates []update
	selects []string
}

func (h *fakeHost) callbacks() Callbacks {
	return Callbacks{
		UpdateItem: func(id string, p clip.Patch) { h.updates = append(h.updates, update{id, p}) },
		Select:     func(id string) { h.selects = append(h.selects, id) },
	}
}

// Container at (10,20) sized 200x100. A text clip with default style sits
// at (30,100); "Hello" is five cells wide.
func newOverlay(t *testing.T, items ...*clip.Clip) (*Overlay, *fakeHost, *focus.Tracker) {
	t.Helper()
	h := &fakeHost{}
	tr := focus.NewTracker()
	o, err := New(DefaultConfig(), h.callbacks(), tr, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	o.SetContainer(Container{Left: 10, Top: 20, Width: 200, Height: 100})
	o.SetProps(items, "")
	return o, h, tr
}

func textClip(id, content string) *clip.Clip {
	return &clip.Clip{ID: id, Kind: clip.KindText, Content: content}
}

func press(x, y int, ts time.Time) mouse.Event {
	return mouse.Event{Position: mouse.Position{X: x, Y: y}, Button: mouse.ButtonLeft, Action: mouse.ActionPress, Timestamp: ts}
}

func move(x, y int) mouse.Event {
	return mouse.Event{Position: mouse.Position{X: x, Y: y}, Action: mouse.ActionMove}
}

func release(x, y int) mouse.Event {
	return mouse.Event{Position: mouse.Position{X: x, Y: y}, Button: mouse.ButtonLeft, Action: mouse.ActionRelease}
}

func doubleClick(o *Overlay, x, y int) {
	now := time.Now()
	o.HandleMouse(press(x, y, now))
	o.HandleMouse(release(x, y))
	o.HandleMouse(press(x, y, now.Add(100*time.Millisecond)))
	o.HandleMouse(release(x, y))
}

func TestNewRequiresCallbacks(t *testing.T) {
	_, err := New(DefaultConfig(), Callbacks{Select: func(string) {}}, nil, nil)
	if !errors.Is(err, ErrMissingCallback) {
		t.Errorf("New() error = %v, want ErrMissingCallback", err)
	}
}

func TestLayoutUsesStyleDefaults(t *testing.T) {
	o, _, _ := newOverlay(t,
		textClip("t1", "Hello"),
		&clip.Clip{ID: "v1", Kind: clip.KindVideo},
	)
	boxes := o.Layout()
	if len(boxes) != 1 {
		t.Fatalf("Layout() = %d boxes, want text clips only", len(boxes))
	}
	b := boxes[0]
	if b.X != 30 || b.Y != 100 || b.W != 5 || b.H != 1 {
		t.Errorf("box = %+v, want (30,100) 5x1", b)
	}
	if b.Style.Color != clip.DefaultStyleColor {
		t.Errorf("color = %q", b.Style.Color)
	}
}

func TestItemAt(t *testing.T) {
	o, _, _ := newOverlay(t, textClip("t1", "Hello"))
	tests := []struct {
		x, y int
		want string
	}{
		{30, 100, "t1"},
		{34, 100, "t1"},
		{35, 100, ""},
		{29, 100, ""},
		{30, 101, ""},
	}
	for _, tt := range tests {
		got := ""
		if c := o.ItemAt(mouse.Position{X: tt.x, Y: tt.y}); c != nil {
			got = c.ID
		}
		if got != tt.want {
			t.Errorf("ItemAt(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDragPlacesInPercentSpace(t *testing.T) {
	c := textClip("t1", "Hello")
	c.Style = &clip.Style{Color: "#ff0000"}
	o, h, _ := newOverlay(t, c)

	if !o.HandleMouse(press(31, 100, time.Time{})) {
		t.Fatal("press on item not consumed")
	}
	if len(h.selects) != 1 || h.selects[0] != "t1" {
		t.Errorf("selects = %v, want [t1]", h.selects)
	}
	if o.State() != StateDragging {
		t.Fatalf("state = %s, want dragging", o.State())
	}

	o.HandleMouse(move(110, 115))
	if len(h.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(h.updates))
	}
	st := h.updates[0].patch.Style
	if st == nil || *st.X != 50 || *st.Y != 90 {
		t.Fatalf("patch style = %+v, want x=50 y=90", st)
	}
	if st.Color != "#ff0000" {
		t.Errorf("patch dropped cosmetic field: color = %q", st.Color)
	}
	if h.updates[0].patch.Content != nil {
		t.Error("drag patch touched content")
	}

	o.HandleMouse(move(0, 0))
	st = h.updates[1].patch.Style
	if *st.X != 0 || *st.Y != 0 {
		t.Errorf("patch below container = (%v,%v), want (0,0)", *st.X, *st.Y)
	}

	if !o.HandleMouse(release(0, 0)) {
		t.Error("release ending a drag not consumed")
	}
	if o.State() != StateIdle {
		t.Errorf("state after release = %s", o.State())
	}
	if o.HandleMouse(move(50, 50)) {
		t.Error("move after release consumed")
	}
}

func TestPositionClampsToMax(t *testing.T) {
	o, _, _ := newOverlay(t)
	tests := []struct {
		x, y         int
		wantX, wantY float64
	}{
		{10, 20, 0, 0},
		{110, 70, 50, 50},
		{210, 120, 90, 90},
		{200, 115, 90, 90},
		{-50, -50, 0, 0},
	}
	for _, tt := range tests {
		x, y, ok := o.Position(mouse.Position{X: tt.x, Y: tt.y})
		if !ok || x != tt.wantX || y != tt.wantY {
			t.Errorf("Position(%d,%d) = (%v,%v,%v), want (%v,%v)", tt.x, tt.y, x, y, ok, tt.wantX, tt.wantY)
		}
	}
}

func TestZeroContainerEmitsNothing(t *testing.T) {
	o, h, _ := newOverlay(t, textClip("t1", "Hello"))
	o.HandleMouse(press(31, 100, time.Time{}))
	o.SetContainer(Container{})
	if !o.HandleMouse(move(50, 50)) {
		t.Error("move during drag not consumed")
	}
	if len(h.updates) != 0 {
		t.Errorf("updates = %v, want none without a container", h.updates)
	}
}

func TestDoubleClickEditsAndConfirmCommits(t *testing.T) {
	o, h, tr := newOverlay(t, textClip("t1", "Hello"))
	doubleClick(o, 31, 100)

	id, draft, ok := o.Editing()
	if !ok || id != "t1" || draft != "Hello" {
		t.Fatalf("Editing() = %q, %q, %v", id, draft, ok)
	}
	if !tr.TextEntryFocused() {
		t.Error("editing did not take text focus")
	}

	o.HandleKey(key.NewRuneEvent('!', key.ModNone))
	o.HandleKey(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	o.HandleKey(key.NewSpecialEvent(key.KeySpace, key.ModNone))
	o.HandleKey(key.NewRuneEvent('W', key.ModNone))
	if _, draft, _ := o.Editing(); draft != "Hello W" {
		t.Errorf("draft = %q, want %q", draft, "Hello W")
	}
	if len(h.updates) != 0 {
		t.Fatalf("typing pushed updates: %v", h.updates)
	}

	if !o.HandleKey(key.NewSpecialEvent(key.KeyEnter, key.ModNone)) {
		t.Error("confirm key not consumed")
	}
	if o.State() != StateIdle {
		t.Errorf("state after confirm = %s", o.State())
	}
	if tr.Current().Kind != focus.KindNone {
		t.Errorf("focus after confirm = %+v", tr.Current())
	}
	if len(h.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(h.updates))
	}
	p := h.updates[0].patch
	if p.Content == nil || *p.Content != "Hello W" || p.Style != nil {
		t.Errorf("commit patch = %s", p)
	}
}

func TestBlurCommits(t *testing.T) {
	o, h, _ := newOverlay(t, textClip("t1", "Hello"))
	doubleClick(o, 31, 100)
	o.HandleKey(key.NewRuneEvent('!', key.ModNone))

	if o.HandleMouse(press(190, 30, time.Time{})) {
		t.Error("press on empty canvas consumed")
	}
	if o.State() != StateIdle {
		t.Errorf("state after blur = %s", o.State())
	}
	if len(h.updates) != 1 || *h.updates[0].patch.Content != "Hello!" {
		t.Errorf("updates = %v, want commit of Hello!", h.updates)
	}
}

func TestExternalBlurCommits(t *testing.T) {
	o, h, tr := newOverlay(t, textClip("t1", "Hello"))
	o.BeginEdit("t1")
	tr.Focus(focus.Target{ID: "timeline", Kind: focus.KindSurface}, nil)

	if o.State() != StateIdle || len(h.updates) != 1 {
		t.Errorf("state = %s, updates = %d", o.State(), len(h.updates))
	}
}

func TestEditRefusedDuringDrag(t *testing.T) {
	o, _, tr := newOverlay(t, textClip("t1", "Hello"))
	o.HandleMouse(press(31, 100, time.Time{}))

	if o.BeginEdit("t1") {
		t.Error("BeginEdit() accepted during drag")
	}
	if o.State() != StateDragging {
		t.Errorf("state = %s, want dragging", o.State())
	}
	if tr.TextEntryFocused() {
		t.Error("refused edit took focus")
	}
}

func TestPressWhileEditingDoesNotDrag(t *testing.T) {
	o, h, _ := newOverlay(t, textClip("t1", "Hello"))
	doubleClick(o, 31, 100)
	selects := len(h.selects)

	if !o.HandleMouse(press(31, 100, time.Time{})) {
		t.Error("press on edited item not consumed")
	}
	o.HandleMouse(move(120, 60))
	if o.State() != StateEditing {
		t.Errorf("state = %s, want editing", o.State())
	}
	if len(h.updates) != 0 || len(h.selects) != selects {
		t.Errorf("updates = %v, selects = %v", h.updates, h.selects)
	}
}

func TestPressOtherItemCommitsAndDrags(t *testing.T) {
	b := textClip("t2", "World")
	b.Style = (&clip.Style{}).WithPosition(50, 10)
	o, h, _ := newOverlay(t, textClip("t1", "Hello"), b)

	doubleClick(o, 31, 100)
	o.HandleKey(key.NewRuneEvent('?', key.ModNone))
	o.HandleMouse(press(111, 30, time.Time{}))

	if o.State() != StateDragging {
		t.Fatalf("state = %s, want dragging", o.State())
	}
	if len(h.updates) != 1 || h.updates[0].id != "t1" || *h.updates[0].patch.Content != "Hello?" {
		t.Errorf("updates = %v, want commit of t1", h.updates)
	}
	if last := h.selects[len(h.selects)-1]; last != "t2" {
		t.Errorf("last select = %q, want t2", last)
	}
}

func TestEditedItemRemoved(t *testing.T) {
	o, h, tr := newOverlay(t, textClip("t1", "Hello"))
	o.BeginEdit("t1")
	o.SetProps(nil, "")

	if o.State() != StateIdle {
		t.Errorf("state = %s, want idle", o.State())
	}
	if tr.TextEntryFocused() {
		t.Error("focus kept after item removed")
	}
	if len(h.updates) != 0 {
		t.Errorf("removed item committed: %v", h.updates)
	}
}

func TestLayoutShowsDraft(t *testing.T) {
	o, _, _ := newOverlay(t, textClip("t1", "Hi"))
	o.BeginEdit("t1")
	o.HandleKey(key.NewRuneEvent('!', key.ModNone))

	b := o.Layout()[0]
	if !b.Editing || b.Text != "Hi!" || b.W != 3 {
		t.Errorf("box = %+v", b)
	}
}

func TestAttachRoutesKeysFirst(t *testing.T) {
	o, _, _ := newOverlay(t, textClip("t1", "Hello"))
	reg := listen.NewRegistry()
	release := o.Attach(reg)
	defer release()

	var later int
	reg.Add(func(key.Event) bool { later++; return false })

	if reg.Dispatch(key.NewRuneEvent('x', key.ModNone)) {
		t.Error("idle overlay consumed a key")
	}
	o.BeginEdit("t1")
	if !reg.Dispatch(key.NewSpecialEvent(key.KeyDelete, key.ModNone)) {
		t.Error("editing overlay did not consume Delete")
	}
	if later != 1 {
		t.Errorf("later listener ran %d times, want 1", later)
	}
}

func TestStateString(t *testing.T) {
	if StateEditing.String() != "editing" || State(9).String() != "unknown" {
		t.Error("State.String() mismatch")
	}
}
