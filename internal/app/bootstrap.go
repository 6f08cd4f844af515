package app

import (
	"os"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/config"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/logging"
	"github.com/dshills/adreel/internal/overlay"
	"github.com/dshills/adreel/internal/plugin"
	"github.com/dshills/adreel/internal/term"
	"github.com/dshills/adreel/internal/timeline"
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogging,
		b.initStore,
		b.initInput,
		b.initTimeline,
		b.initOverlay,
		b.initPlugins,
		b.initTerminal,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.logger.Debug("bootstrap complete", "components", b.initOrder)
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		loaded, err := config.Load(b.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}
	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogging builds the logger. The terminal owns stdout and stderr, so
// records go to the configured file or nowhere.
func (b *bootstrapper) initLogging() error {
	if b.opts.Logger != nil {
		b.app.logger = b.opts.Logger
		b.initOrder = append(b.initOrder, "logging")
		return nil
	}

	lc := b.app.config.Logging
	if lc.File == "" {
		b.app.logger = logging.Discard()
		b.initOrder = append(b.initOrder, "logging")
		return nil
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	b.app.logCloser = f
	b.app.logger = logging.New(logging.Config{Level: lc.Level, Format: lc.Format, Output: f})
	b.initOrder = append(b.initOrder, "logging")
	return nil
}

func (b *bootstrapper) initStore() error {
	var seed []clip.Clip
	if b.opts.ClipsPath != "" {
		clips, err := clip.LoadSeedFile(b.opts.ClipsPath)
		if err != nil {
			return &InitError{Component: "clips", Err: err}
		}
		seed = clips
	}
	store, err := clip.NewStore(seed...)
	if err != nil {
		return &InitError{Component: "clips", Err: err}
	}
	b.app.store = store
	b.initOrder = append(b.initOrder, "store")
	return nil
}

func (b *bootstrapper) initInput() error {
	km, err := b.app.config.Input.Keymap()
	if err != nil {
		return &InitError{Component: "input", Err: err}
	}
	b.app.keymap = km
	b.app.focus = focus.NewTracker()
	b.app.keys = listen.NewRegistry()
	b.initOrder = append(b.initOrder, "input")
	return nil
}

func (b *bootstrapper) initTimeline() error {
	app := b.app
	s, err := timeline.New(timelineConfig(app.config), timeline.Callbacks{
		UpdateItem: app.UpdateItem,
		DeleteItem: app.Delete,
		Select:     app.Select,
		Seek:       app.Seek,
	}, timeline.WithLogger(app.logger), timeline.WithFocus(app.focus))
	if err != nil {
		return &InitError{Component: "timeline", Err: err}
	}
	app.surface = s
	b.initOrder = append(b.initOrder, "timeline")
	return nil
}

func (b *bootstrapper) initOverlay() error {
	app := b.app
	o, err := overlay.New(overlayConfig(app.config), overlay.Callbacks{
		UpdateItem: app.UpdateItem,
		Select:     app.Select,
	}, app.focus, app.logger)
	if err != nil {
		return &InitError{Component: "overlay", Err: err}
	}
	app.overlay = o
	b.initOrder = append(b.initOrder, "overlay")
	return nil
}

// initPlugins loads the configured Lua script. A broken script is logged
// and the editor runs without hooks.
func (b *bootstrapper) initPlugins() error {
	app := b.app
	script := app.config.Plugins.Script
	if script == "" {
		return nil
	}
	h, err := plugin.Load(script, app, plugin.WithLogger(app.logger))
	if err != nil {
		app.logger.Warn("plugin disabled", "script", script, "error", err)
		return nil
	}
	app.plugins = h
	b.initOrder = append(b.initOrder, "plugins")
	return nil
}

func (b *bootstrapper) initTerminal() error {
	app := b.app
	var t *term.Terminal
	if b.opts.Screen != nil {
		t = term.NewWithScreen(b.opts.Screen)
	} else {
		var err error
		if t, err = term.New(); err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
	}
	app.term = t
	app.painter = term.NewPainter(t.Screen())
	app.clock = NewClock(app.config.Playback.FrameInterval(), t.Interrupt, app.metrics.RecordDroppedTick)
	b.initOrder = append(b.initOrder, "terminal")
	return nil
}

// cleanup releases what earlier steps acquired.
func (b *bootstrapper) cleanup() {
	if b.app.plugins != nil {
		b.app.plugins.Close()
		b.app.plugins = nil
	}
	if b.app.logCloser != nil {
		b.app.logCloser.Close()
		b.app.logCloser = nil
	}
}

// timelineConfig maps the configuration onto the surface geometry.
func timelineConfig(cfg *config.Config) timeline.Config {
	tc := cfg.Timeline
	deleteKeys, _ := cfg.Input.Keys()
	return timeline.Config{
		PixelsPerFrame:  tc.PixelsPerFrame,
		TrackHeight:     tc.TrackHeight,
		LaneOffset:      tc.LaneOffset,
		ClipHeight:      tc.ClipHeight,
		HandleWidth:     tc.HandleWidth,
		DeleteInset:     tc.DeleteInset,
		DeleteSize:      tc.DeleteSize,
		MinDuration:     tc.MinDuration,
		MinLanes:        tc.MinLanes,
		DefaultDuration: tc.DefaultDuration,
		DeleteKeys:      deleteKeys,
	}
}

// overlayConfig maps the configuration onto the overlay settings.
func overlayConfig(cfg *config.Config) overlay.Config {
	_, confirm := cfg.Input.Keys()
	return overlay.Config{
		MaxPercent: cfg.Overlay.MaxPercent,
		CharWidth:  cfg.Overlay.CharWidth,
		LineHeight: cfg.Overlay.LineHeight,
		ConfirmKey: confirm,
		Click: mouse.Config{
			DoubleClickTime:     cfg.Input.DoubleClickTime,
			DoubleClickDistance: cfg.Input.DoubleClickDistance,
		},
	}
}
