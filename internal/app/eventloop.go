package app

import (
	"errors"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/config"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/keymap"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/term"
)

// Interrupt payloads posted to the event loop from other goroutines.
type (
	quitEvent   struct{}
	reloadEvent struct{ cfg *config.Config }
)

// newTextContent is the text a freshly added text clip shows.
const newTextContent = "New text"

// scrollStep is how many columns Left and Right scroll the timeline.
const scrollStep = 10

// pointerOwner is the component that received the current press. Moves
// and the release go to it even when the pointer leaves its region.
type pointerOwner uint8

const (
	ownerNone pointerOwner = iota
	ownerCanvas
	ownerTimeline
)

// eventLoop polls terminal events until quit or the screen closes.
func (app *Application) eventLoop() error {
	for {
		ev, ok := app.term.Poll()
		if !ok {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// handleEvent processes one terminal event and repaints.
// It returns ErrQuit if the application should exit.
func (app *Application) handleEvent(ev term.Event) error {
	timer := StartTimer()
	defer func() { app.metrics.RecordEvent(timer.Elapsed()) }()

	var err error
	switch ev.Kind {
	case term.EventKey:
		err = app.handleKey(ev.Key)
	case term.EventMouse:
		app.handleMouse(ev.Mouse)
	case term.EventResize:
		app.term.Sync()
	case term.EventInterrupt:
		err = app.handleInterrupt(ev.Data)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	app.render()
	return nil
}

// handleKey offers a key to the script, then to the registered listeners
// (the overlay editor, then the surface's delete handler), then to the
// host's own commands. Ctrl-C always quits.
func (app *Application) handleKey(ev key.Event) error {
	if ev.Key == key.KeyRune && ev.Rune == 'c' && ev.Modifiers.Has(key.ModCtrl) {
		return ErrQuit
	}
	if app.plugins != nil {
		consumed, err := app.plugins.OnKey(ev)
		if err != nil {
			app.hookFailed(err)
		} else if consumed {
			return nil
		}
	}
	if app.keys.Dispatch(ev) {
		return nil
	}
	return app.command(ev)
}

// command runs the host action bound to the key, if any.
func (app *Application) command(ev key.Event) error {
	action, ok := app.keymap.Lookup(ev)
	if !ok {
		return nil
	}
	switch action {
	case keymap.ActionQuit:
		return ErrQuit
	case keymap.ActionAddText:
		app.addTextClip()
	case keymap.ActionTogglePlayback:
		playing := app.clock.Toggle()
		app.logger.Info("playback toggled", "playing", playing, "frame", app.currentTime)
	case keymap.ActionClearSelection:
		app.Select("")
	case keymap.ActionScrollLeft:
		app.scroll(-scrollStep)
	case keymap.ActionScrollRight:
		app.scroll(scrollStep)
	case keymap.ActionScrollHome:
		app.scrollX = 0
	}
	return nil
}

func (app *Application) scroll(cols int) {
	app.scrollX = max(0, app.scrollX+float64(cols)*cellWidth)
}

// addTextClip appends a text clip at the playhead on the first lane that
// is free for its whole span, and selects it.
func (app *Application) addTextClip() {
	start := app.currentTime
	c := clip.Clip{
		ID:               clip.NewID(),
		Kind:             clip.KindText,
		StartAt:          start,
		DurationInFrames: clip.DefaultDuration,
		TrackIndex:       firstFreeTrack(app.store.Items(), start, start+clip.DefaultDuration),
		Content:          newTextContent,
	}
	if err := app.store.Append(c); err != nil {
		app.metrics.RecordStoreError()
		app.logger.Warn("add text clip failed", "error", err)
		return
	}
	app.logger.Info("text clip added", "clip_id", c.ID, "start_at", c.StartAt, "track", c.TrackIndex)
	app.Select(c.ID)
}

// firstFreeTrack returns the lowest track with no clip overlapping the
// frame range [start, end).
func firstFreeTrack(items []*clip.Clip, start, end int) int {
	busy := make(map[int]bool)
	for _, c := range items {
		p := clip.Normalize(c)
		if p.StartAt < end && start < p.End() {
			busy[p.Track] = true
		}
	}
	track := 0
	for busy[track] {
		track++
	}
	return track
}

// handleMouse routes a pointer event to the canvas overlay or the
// timeline surface by where the press landed.
func (app *Application) handleMouse(ev mouse.Event) {
	if ev.Action == mouse.ActionPress && app.pointer == ownerNone {
		x, y := ev.Position.X, ev.Position.Y
		switch {
		case app.regions.canvas.Contains(x, y):
			app.pointer = ownerCanvas
		case app.regions.timeline.Contains(x, y):
			app.pointer = ownerTimeline
		default:
			return
		}
	}

	switch app.pointer {
	case ownerCanvas:
		app.overlay.HandleMouse(ev)
	case ownerTimeline:
		app.surface.HandleMouse(app.regions.timeline.ToMouse(ev))
	}

	if ev.Action == mouse.ActionRelease {
		app.pointer = ownerNone
	}
}

// handleInterrupt processes data posted by the clock, the config
// reloader or Shutdown.
func (app *Application) handleInterrupt(data any) error {
	switch d := data.(type) {
	case tickEvent:
		if app.clock.Playing() {
			app.advance()
		}
	case reloadEvent:
		app.applyConfig(d.cfg)
	case quitEvent:
		return ErrQuit
	}
	return nil
}

// advance moves the playhead one frame, wrapping at the duration.
// Playback does not go through Seek, so scripts only see user seeks.
func (app *Application) advance() {
	app.currentTime++
	if app.currentTime >= app.duration() {
		app.currentTime = 0
	}
	app.metrics.RecordTick()
}

// applyConfig switches to a reloaded configuration. Bindings or geometry
// that fail to apply leave the previous configuration in effect.
func (app *Application) applyConfig(cfg *config.Config) {
	km, err := cfg.Input.Keymap()
	if err != nil {
		app.logger.Warn("reloaded key bindings rejected", "error", err)
		return
	}
	if err := app.surface.Reconfigure(timelineConfig(cfg)); err != nil {
		app.logger.Warn("reloaded timeline config rejected", "error", err)
		return
	}
	app.keymap = km
	app.config = cfg
	app.clock.SetInterval(cfg.Playback.FrameInterval())
	app.logger.Info("config applied", "pixels_per_frame", cfg.Timeline.PixelsPerFrame, "fps", cfg.Playback.FPS)
}
