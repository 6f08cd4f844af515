// Package app is the hosting page for the timeline editor. It owns the
// clip collection, the selection, the current frame and the playback
// clock, and wires the timeline surface, the text overlay, the plugin
// host and the terminal together around one event loop.
package app

import (
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/config"
	"github.com/dshills/adreel/internal/input/focus"
	"github.com/dshills/adreel/internal/input/keymap"
	"github.com/dshills/adreel/internal/input/listen"
	"github.com/dshills/adreel/internal/overlay"
	"github.com/dshills/adreel/internal/plugin"
	"github.com/dshills/adreel/internal/term"
	"github.com/dshills/adreel/internal/timeline"
)

// Application is the central coordinator for all adreel components.
// Everything except the clock and the config reloader runs on the event
// loop goroutine.
type Application struct {
	opts      Options
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer

	// Host-owned state.
	store       *clip.Store
	selected    string
	currentTime int

	// Components
	focus    *focus.Tracker
	keys     *listen.Registry
	keymap   *keymap.Keymap
	surface  *timeline.Surface
	overlay  *overlay.Overlay
	plugins  *plugin.Host
	reloader *config.Reloader
	clock    *Clock
	metrics  *Metrics

	// Terminal
	term    *term.Terminal
	painter *term.Painter
	regions regions
	scrollX float64
	pointer pointerOwner

	unmount        func()
	releaseOverlay func()

	running atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is a TOML or YAML config file. Empty means defaults and
	// environment only.
	ConfigPath string

	// ClipsPath is a YAML clip seed file loaded at startup.
	ClipsPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// Config skips loading and uses this configuration.
	Config *config.Config

	// Logger overrides the logger built from the configuration.
	Logger *slog.Logger

	// Screen overrides the controlling terminal, for tests.
	Screen tcell.Screen
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		metrics: NewMetrics(),
	}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run initializes the terminal and runs the event loop until quit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.start(); err != nil {
		return err
	}
	defer app.stop()

	return app.eventLoop()
}

// Shutdown asks a running event loop to exit. It is safe to call from
// any goroutine.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	if err := app.term.Interrupt(quitEvent{}); err != nil {
		app.logger.Warn("shutdown request dropped", "error", err)
	}
}

// Close releases resources acquired by New.
func (app *Application) Close() {
	if app.plugins != nil {
		app.plugins.Close()
		app.plugins = nil
	}
	app.logger.Debug("closed", app.metrics.Snapshot().LogAttrs()...)
	if app.logCloser != nil {
		app.logCloser.Close()
		app.logCloser = nil
	}
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.config
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// CurrentTime returns the playhead frame.
func (app *Application) CurrentTime() int {
	return app.currentTime
}

// SelectedID returns the selected clip id, or "".
func (app *Application) SelectedID() string {
	return app.selected
}

// start brings up the terminal and mounts the interactive components.
func (app *Application) start() error {
	if err := app.term.Init(); err != nil {
		return &InitError{Component: "terminal", Err: err}
	}

	// The overlay listens first so typing reaches an open editor before
	// the surface's delete key handler.
	app.releaseOverlay = app.overlay.Attach(app.keys)
	unmount, err := app.surface.Mount(app.keys)
	if err != nil {
		app.releaseOverlay()
		app.term.Fini()
		return &InitError{Component: "timeline", Err: err}
	}
	app.unmount = unmount

	if app.opts.ConfigPath != "" && app.opts.Config == nil {
		r, err := config.NewReloader(app.opts.ConfigPath, app.config, app.logger)
		if err != nil {
			app.logger.Warn("config reload disabled", "path", app.opts.ConfigPath, "error", err)
		} else {
			r.Subscribe(func(cfg *config.Config) {
				if err := app.term.Interrupt(reloadEvent{cfg: cfg}); err != nil {
					app.logger.Warn("config reload dropped", "error", err)
				}
			})
			app.reloader = r
		}
	}

	app.logger.Info("started", "clips", app.store.Len())
	app.render()
	return nil
}

// stop reverses start.
func (app *Application) stop() {
	app.clock.Stop()
	if app.reloader != nil {
		app.reloader.Close()
		app.reloader = nil
	}
	if app.unmount != nil {
		app.unmount()
		app.unmount = nil
	}
	if app.releaseOverlay != nil {
		app.releaseOverlay()
		app.releaseOverlay = nil
	}
	app.term.Fini()
	app.logger.Info("stopped")
}
