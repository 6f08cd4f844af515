package timeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/timeline/drag"
)

type update struct {
	id    string
	patch clip.Patch
}

type host struct {
	store   *clip.Store
	updates []update
	deletes []string
	selects []string
	seeks   []int
	current int
	sel     string
}

func newHost(t *testing.T, clips ...clip.Clip) *host {
	t.Helper()
	store, err := clip.NewStore(clips...)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	return &host{store: store}
}

func (h *host) callbacks() Callbacks {
	return Callbacks{
		UpdateItem: func(id string, p clip.Patch) {
			h.updates = append(h.updates, update{id, p})
			_, _ = h.store.Update(id, p)
		},
		DeleteItem: func(id string) {
			h.deletes = append(h.deletes, id)
			_ = h.store.Delete(id)
		},
		Select: func(id string) {
			h.selects = append(h.selects, id)
			h.sel = id
		},
		Seek: func(frame int) {
			h.seeks = append(h.seeks, frame)
			h.current = frame
		},
	}
}

func (h *host) props() Props {
	return Props{Items: h.store.Items(), CurrentTime: h.current, SelectedID: h.sel}
}

func newSurface(t *testing.T, h *host, opts ...Option) *Surface {
	t.Helper()
	s, err := New(DefaultConfig(), h.callbacks(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	s.Render(h.props())
	return s
}

func ev(action mouse.Action, x, y int) mouse.Event {
	return mouse.Event{Action: action, Button: mouse.ButtonLeft, Position: mouse.Position{X: x, Y: y}}
}

// gesture presses at from, moves through each point, releases at the last.
func gesture(s *Surface, h *host, from mouse.Position, to ...mouse.Position) {
	s.HandleMouse(ev(mouse.ActionPress, from.X, from.Y))
	s.SetProps(h.props())
	last := from
	for _, p := range to {
		s.HandleMouse(ev(mouse.ActionMove, p.X, p.Y))
		s.SetProps(h.props())
		last = p
	}
	s.HandleMouse(ev(mouse.ActionRelease, last.X, last.Y))
	s.SetProps(h.props())
}

func TestNewRequiresCallbacks(t *testing.T) {
	_, err := New(DefaultConfig(), Callbacks{Select: func(string) {}})
	if !errors.Is(err, ErrMissingCallback) {
		t.Fatalf("New() error = %v, want ErrMissingCallback", err)
	}
	for _, name := range []string{"UpdateItem", "DeleteItem", "Seek"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), "Select,") {
		t.Errorf("error %q names a supplied callback", err)
	}
}

func TestNewRejectsBadGeometry(t *testing.T) {
	h := newHost(t)
	cfg := DefaultConfig()
	cfg.PixelsPerFrame = 0
	if _, err := New(cfg, h.callbacks()); err == nil {
		t.Error("New() accepted zero pixelsPerFrame")
	}
}

func TestLayoutGeometry(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", Kind: clip.KindVideo, Title: "Hero", StartAt: 100, DurationInFrames: 150, TrackIndex: 1})
	h.current = 45
	s := newSurface(t, h)
	l := s.Render(h.props())

	if l.Width != 1800 {
		t.Errorf("Width = %g, want 900 frames * 2", l.Width)
	}
	if l.PlayheadX != 90 {
		t.Errorf("PlayheadX = %g, want 90", l.PlayheadX)
	}
	if len(l.Lanes) != 6 {
		t.Errorf("lanes = %d, want 6", len(l.Lanes))
	}
	if len(l.Clips) != 1 {
		t.Fatalf("clips = %d", len(l.Clips))
	}
	b := l.Clips[0]
	if b.Rect != (Rect{X: 200, Y: 70, W: 300, H: 32}) {
		t.Errorf("Rect = %+v", b.Rect)
	}
	if b.Label != "Hero" || b.Visual.Icon != clip.KindVideo.Visual().Icon {
		t.Errorf("box = %+v", b)
	}
	if b.Delete != nil || b.Selected {
		t.Error("unselected clip has delete affordance")
	}
}

func TestLayoutWidthCoversFurthestClip(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 1000, DurationInFrames: 200})
	s := newSurface(t, h)
	if got := s.Layout().Width; got != 2400 {
		t.Errorf("Width = %g, want 1200 frames * 2", got)
	}

	p := h.props()
	p.Duration = 2000
	if got := s.Render(p).Width; got != 4000 {
		t.Errorf("Width = %g, want duration 2000 * 2", got)
	}
}

func TestLayoutLaneCount(t *testing.T) {
	tests := []struct {
		name   string
		tracks []int
		want   int
	}{
		{"empty", nil, 6},
		{"low tracks", []int{0, 3}, 6},
		{"track 4 leaves a free lane", []int{4}, 6},
		{"track 5", []int{5}, 7},
		{"track 9", []int{2, 9}, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clips []clip.Clip
			for i, tr := range tt.tracks {
				clips = append(clips, clip.Clip{ID: string(rune('a' + i)), TrackIndex: tr})
			}
			s := newSurface(t, newHost(t, clips...))
			if got := len(s.Layout().Lanes); got != tt.want {
				t.Errorf("lanes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayoutSelectedPaintedLastWithDelete(t *testing.T) {
	h := newHost(t,
		clip.Clip{ID: "a", StartAt: 0, DurationInFrames: 100},
		clip.Clip{ID: "b", StartAt: 0, DurationInFrames: 100},
	)
	h.sel = "a"
	l := newSurface(t, h).Render(h.props())

	last := l.Clips[len(l.Clips)-1]
	if last.ID != "a" || !last.Selected {
		t.Fatalf("last painted = %s, want selected a", last.ID)
	}
	if last.Delete == nil {
		t.Fatal("selected clip has no delete affordance")
	}
	want := Rect{X: 200 - 12 - 16, Y: 30 + 8, W: 16, H: 16}
	if *last.Delete != want {
		t.Errorf("Delete = %+v, want %+v", *last.Delete, want)
	}
}

func TestHitTest(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	h.sel = "a"
	s := newSurface(t, h)

	tests := []struct {
		x, y int
		want HitKind
	}{
		{300, 40, HitBody},
		{201, 40, HitLeftHandle},
		{495, 40, HitRightHandle},
		{480, 40, HitDelete},
		{150, 40, HitCanvas},
		{300, 10, HitCanvas},
		{500, 40, HitCanvas},
	}
	for _, tt := range tests {
		hit := s.HitTest(mouse.Position{X: tt.x, Y: tt.y})
		if hit.Kind != tt.want {
			t.Errorf("HitTest(%d,%d) = %s, want %s", tt.x, tt.y, hit.Kind, tt.want)
		}
	}
}

func TestCanvasClickSeeksAndClearsSelection(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 0, DurationInFrames: 60})
	h.sel = "a"
	s := newSurface(t, h)
	before := h.store.Items()

	gesture(s, h, mouse.Position{X: 400, Y: 10})

	if len(h.seeks) != 1 || h.seeks[0] != 200 {
		t.Errorf("seeks = %v, want [200]", h.seeks)
	}
	if len(h.selects) != 1 || h.selects[0] != "" {
		t.Errorf("selects = %q, want one clear", h.selects)
	}
	if len(h.updates) != 0 {
		t.Errorf("updates = %v, want none", h.updates)
	}
	if h.store.Items()[0] != before[0] {
		t.Error("canvas click replaced a clip record")
	}
	if s.Selected() != "" {
		t.Errorf("Selected() = %q after canvas click", s.Selected())
	}
}

func TestCanvasPressReleasedOverClipDoesNotSeek(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)

	gesture(s, h, mouse.Position{X: 10, Y: 40}, mouse.Position{X: 300, Y: 40})
	if len(h.seeks) != 0 || len(h.updates) != 0 {
		t.Errorf("seeks = %v, updates = %v", h.seeks, h.updates)
	}
}

func TestBodyDragMovesClip(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150, TrackIndex: 0})
	s := newSurface(t, h)

	s.HandleMouse(ev(mouse.ActionPress, 300, 40))
	if s.DragMode() != drag.ModeMoving {
		t.Fatalf("DragMode() = %s, want moving", s.DragMode())
	}
	if len(h.selects) != 1 || h.selects[0] != "a" {
		t.Errorf("selects = %q, want [a]", h.selects)
	}
	s.HandleMouse(ev(mouse.ActionMove, 340, 121))
	s.HandleMouse(ev(mouse.ActionRelease, 340, 121))

	if s.DragMode() != drag.ModeIdle {
		t.Errorf("DragMode() = %s after release", s.DragMode())
	}
	if len(h.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(h.updates))
	}
	got, _ := h.store.Get("a")
	if got.StartAt != 120 || got.TrackIndex != 2 {
		t.Errorf("clip = %+v, want startAt 120 track 2", got)
	}
	if len(h.seeks) != 0 {
		t.Error("drag release seeked")
	}
}

func TestHandleDragResizes(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)

	gesture(s, h, mouse.Position{X: 202, Y: 40}, mouse.Position{X: 162, Y: 40})
	got, _ := h.store.Get("a")
	if got.StartAt != 80 || got.DurationInFrames != 170 {
		t.Errorf("after left resize clip = %+v", got)
	}

	s.Render(h.props())
	right := int(80*2 + 170*2 - 2)
	gesture(s, h, mouse.Position{X: right, Y: 40}, mouse.Position{X: right - 400, Y: 40})
	got, _ = h.store.Get("a")
	if got.DurationInFrames != clip.MinDuration || got.StartAt != 80 {
		t.Errorf("after right resize clip = %+v", got)
	}
}

func TestClickOnClipSelectsWithoutPatch(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)

	gesture(s, h, mouse.Position{X: 300, Y: 40})
	if h.sel != "a" {
		t.Errorf("selection = %q, want a", h.sel)
	}
	if len(h.updates) != 0 || len(h.seeks) != 0 {
		t.Errorf("updates = %v, seeks = %v", h.updates, h.seeks)
	}
}

func TestDeleteAffordanceStopsPropagation(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	h.sel = "a"
	s := newSurface(t, h)

	gesture(s, h, mouse.Position{X: 480, Y: 40}, mouse.Position{X: 520, Y: 40})

	if len(h.deletes) != 1 || h.deletes[0] != "a" {
		t.Errorf("deletes = %v", h.deletes)
	}
	if s.DragMode() != drag.ModeIdle || len(h.updates) != 0 {
		t.Error("delete affordance started a gesture")
	}
	if len(h.seeks) != 0 || len(h.selects) != 0 {
		t.Errorf("seeks = %v, selects = %q", h.seeks, h.selects)
	}
}

func TestNonLeftButtonIgnored(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)

	e := ev(mouse.ActionPress, 300, 40)
	e.Button = mouse.ButtonRight
	if s.HandleMouse(e) {
		t.Error("right press handled")
	}
	if s.HandleMouse(ev(mouse.ActionMove, 310, 40)) {
		t.Error("move without press handled")
	}
	if s.HandleMouse(ev(mouse.ActionRelease, 310, 40)) {
		t.Error("release without press handled")
	}
}

func TestMountRoutesDeleteKey(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a"})
	h.sel = "a"
	tracker := focus.NewTracker()
	s := newSurface(t, h, WithFocus(tracker))
	reg := listen.NewRegistry()

	unmount, err := s.Mount(reg)
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if _, err := s.Mount(reg); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Mount() error = %v", err)
	}
	if tracker.Current().Kind != focus.KindSurface {
		t.Errorf("focus = %+v after mount", tracker.Current())
	}

	tracker.Focus(focus.Target{ID: "input", Kind: focus.KindTextEntry}, nil)
	reg.Dispatch(key.NewSpecialEvent(key.KeyBackspace, key.ModNone))
	if len(h.deletes) != 0 {
		t.Errorf("Backspace in text entry deleted %v", h.deletes)
	}

	tracker.Blur()
	reg.Dispatch(key.NewSpecialEvent(key.KeyDelete, key.ModNone))
	if len(h.deletes) != 1 || h.deletes[0] != "a" {
		t.Errorf("deletes = %v", h.deletes)
	}

	unmount()
	unmount()
	if reg.Len() != 0 {
		t.Errorf("registry holds %d listeners after unmount", reg.Len())
	}
	if _, err := s.Mount(reg); err != nil {
		t.Errorf("remount error = %v", err)
	}
}

func TestRunReleasesOnPanic(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)
	reg := listen.NewRegistry()

	func() {
		defer func() { _ = recover() }()
		_ = s.Run(reg, func() error {
			s.HandleMouse(ev(mouse.ActionPress, 300, 40))
			panic("render failure")
		})
	}()

	if reg.Len() != 0 {
		t.Errorf("registry holds %d listeners after panic", reg.Len())
	}
	if s.DragMode() != drag.ModeIdle {
		t.Errorf("DragMode() = %s after unmount", s.DragMode())
	}
}

func TestRepeatedMountsDoNotAccumulate(t *testing.T) {
	h := newHost(t)
	s := newSurface(t, h)
	reg := listen.NewRegistry()
	for i := 0; i < 5; i++ {
		if err := s.Run(reg, func() error { return nil }); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
	if reg.Len() != 0 {
		t.Errorf("registry holds %d listeners", reg.Len())
	}
}

func TestReconfigure(t *testing.T) {
	h := newHost(t, clip.Clip{ID: "a", StartAt: 100, DurationInFrames: 150})
	s := newSurface(t, h)

	cfg := DefaultConfig()
	cfg.PixelsPerFrame = 4
	if err := s.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}
	if got := s.Layout().Clips[0].Rect.X; got != 400 {
		t.Errorf("Rect.X = %g after reconfigure, want 400", got)
	}

	cfg.TrackHeight = -1
	if err := s.Reconfigure(cfg); err == nil {
		t.Error("Reconfigure accepted negative track height")
	}
	if s.Config().TrackHeight != 40 {
		t.Error("failed Reconfigure changed the config")
	}
}

func TestHitKindString(t *testing.T) {
	if HitDelete.String() != "delete" || HitKind(50).String() != "unknown" {
		t.Error("HitKind.String() mismatch")
	}
}
