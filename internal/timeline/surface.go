package timeline

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/logging"
	"github.com/dshills/adreel/internal/timeline/coords"
	"github.com/dshills/adreel/internal/timeline/drag"
	"github.com/dshills/adreel/internal/timeline/selection"
)

// Props is the host-owned state read on each render.
type Props struct {
	Items       []*clip.Clip
	CurrentTime int
	// Duration is the total frame count; zero means the configured default.
	Duration int
	// SelectedID is the selected clip, or "" for none.
	SelectedID string
}

// Callbacks are the host functions the surface reports changes through.
// All four are required.
type Callbacks struct {
	UpdateItem func(id string, p clip.Patch)
	DeleteItem func(id string)
	Select     func(id string)
	Seek       func(frame int)
}

// Validate reports which callbacks are missing.
func (c Callbacks) Validate() error {
	var missing []string
	if c.UpdateItem == nil {
		missing = append(missing, "UpdateItem")
	}
	if c.DeleteItem == nil {
		missing = append(missing, "DeleteItem")
	}
	if c.Select == nil {
		missing = append(missing, "Select")
	}
	if c.Seek == nil {
		missing = append(missing, "Seek")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCallback, strings.Join(missing, ", "))
	}
	return nil
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) { s.logger = l }
}

// WithFocus shares a focus tracker with other components, so the delete
// key defers to whatever text entry they focus.
func WithFocus(t *focus.Tracker) Option {
	return func(s *Surface) { s.focus = t }
}

// Surface is one mounted timeline. Its drag session and selection mirror
// are private to the instance. It is driven from a single event loop and
// is not safe for concurrent use.
type Surface struct {
	cfg    Config
	mapper coords.Mapper
	cb     Callbacks
	props  Props

	drag  *drag.Machine
	sel   *selection.Controller
	focus *focus.Tracker

	press    mouse.Tracker
	pressHit Hit

	release func()
	logger  *slog.Logger
}

// New creates a surface. It fails if any callback is missing or the
// geometry is invalid.
func New(cfg Config, cb Callbacks, opts ...Option) (*Surface, error) {
	if err := cb.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mapper, _ := cfg.Mapper()

	s := &Surface{
		cfg:    cfg,
		mapper: mapper,
		cb:     cb,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.focus == nil {
		s.focus = focus.NewTracker()
	}
	base := s.logger
	s.logger = logging.WithComponent(base, "timeline")
	s.drag = drag.New(mapper, cfg.MinDuration, base)
	s.sel = selection.New(cb.Select, cb.DeleteItem, s.focus, cfg.DeleteKeys, base)
	return s, nil
}

// Config returns the active configuration.
func (s *Surface) Config() Config {
	return s.cfg
}

// Mapper returns the active coordinate mapper.
func (s *Surface) Mapper() coords.Mapper {
	return s.mapper
}

// Reconfigure replaces the geometry. An in-flight gesture keeps its
// snapshot but converts later pointer offsets with the new scale.
func (s *Surface) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	mapper, _ := cfg.Mapper()
	s.cfg = cfg
	s.mapper = mapper
	s.drag.SetMapper(mapper)
	s.sel.SetDeleteKeys(cfg.DeleteKeys)
	s.logger.Info("geometry reconfigured", "pixels_per_frame", cfg.PixelsPerFrame, "track_height", cfg.TrackHeight)
	return nil
}

// SetProps records the host state without computing a layout.
func (s *Surface) SetProps(p Props) {
	s.props = p
	s.sel.Sync(p.SelectedID)
}

// Render records the host state and returns the layout to draw.
func (s *Surface) Render(p Props) Layout {
	s.SetProps(p)
	return s.layout()
}

// Layout returns the layout for the last props.
func (s *Surface) Layout() Layout {
	return s.layout()
}

// HitTest reports what lies under pos.
func (s *Surface) HitTest(pos mouse.Position) Hit {
	return hitTest(s.layout(), float64(pos.X), float64(pos.Y))
}

// DragMode returns the state of the drag machine.
func (s *Surface) DragMode() drag.Mode {
	return s.drag.Mode()
}

// Selected returns the selection as the surface last saw it.
func (s *Surface) Selected() string {
	return s.sel.Selected()
}

// HandleMouse routes a pointer event. Positions are relative to the
// surface origin. It reports whether the surface acted on the event.
func (s *Surface) HandleMouse(ev mouse.Event) bool {
	switch ev.Action {
	case mouse.ActionPress:
		if ev.Button != mouse.ButtonLeft {
			return false
		}
		return s.pointerDown(ev.Position)
	case mouse.ActionMove:
		return s.pointerMove(ev.Position)
	case mouse.ActionRelease:
		return s.pointerUp(ev.Position)
	}
	return false
}

func (s *Surface) pointerDown(pos mouse.Position) bool {
	hit := s.HitTest(pos)
	s.press.Press(pos)
	s.pressHit = hit

	switch hit.Kind {
	case HitDelete:
		s.sel.Delete(hit.Clip.ID)
	case HitBody:
		s.beginGesture(hit.Clip, drag.ModeMoving, pos)
	case HitLeftHandle:
		s.beginGesture(hit.Clip, drag.ModeResizingLeft, pos)
	case HitRightHandle:
		s.beginGesture(hit.Clip, drag.ModeResizingRight, pos)
	case HitCanvas:
		// Seeking waits for the release so a press-and-drag on empty
		// canvas outside the surface is not a click.
	}
	return true
}

func (s *Surface) beginGesture(c *clip.Clip, mode drag.Mode, pos mouse.Position) {
	s.sel.Select(c.ID)
	s.drag.Begin(c, mode, pos)
}

func (s *Surface) pointerMove(pos mouse.Position) bool {
	if !s.press.Move(pos) {
		return false
	}
	sess, ok := s.drag.Session()
	if !ok {
		return false
	}
	if p, ok := s.drag.Move(pos); ok {
		s.cb.UpdateItem(sess.ClipID, p)
	}
	return true
}

func (s *Surface) pointerUp(pos mouse.Position) bool {
	if !s.press.Active() {
		return false
	}
	s.press.Release(pos)
	s.drag.End()

	hit := s.pressHit
	s.pressHit = Hit{}
	if hit.Kind != HitCanvas {
		return true
	}
	if s.HitTest(pos).Kind != HitCanvas {
		return true
	}
	s.canvasClick(pos)
	return true
}

// canvasClick seeks to the clicked frame and clears the selection.
func (s *Surface) canvasClick(pos mouse.Position) {
	frame := s.mapper.SeekFrame(float64(pos.X))
	s.logger.Debug("canvas click", "frame", frame)
	s.cb.Seek(frame)
	s.sel.Clear()
}

// Mount registers the delete-key listener with reg and focuses the
// surface. The returned function unmounts: it removes the listener and
// ends any gesture whose pointer-up will never arrive. It is safe to call
// more than once.
func (s *Surface) Mount(reg *listen.Registry) (unmount func(), err error) {
	if s.release != nil {
		return nil, ErrAlreadyMounted
	}
	target := focus.Target{ID: "timeline", Kind: focus.KindSurface}
	if s.focus.Current().Kind == focus.KindNone {
		s.focus.Focus(target, nil)
	}
	release := s.sel.Attach(reg)
	s.release = release
	s.logger.Debug("mounted")

	done := false
	return func() {
		if done {
			return
		}
		done = true
		release()
		s.release = nil
		s.drag.End()
		s.press = mouse.Tracker{}
		s.focus.Release(target)
		s.logger.Debug("unmounted")
	}, nil
}

// Run mounts the surface, calls fn, and unmounts on every exit path,
// including a panic in fn.
func (s *Surface) Run(reg *listen.Registry, fn func() error) error {
	unmount, err := s.Mount(reg)
	if err != nil {
		return err
	}
	defer unmount()
	return fn()
}
