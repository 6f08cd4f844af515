package config

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/dshills/adreel/internal/config/watcher"
	"github.com/dshills/adreel/internal/logging"
)

// Reloader reloads a config file whenever it changes and hands each valid
// result to the subscribers. An invalid file is logged and the previous
// configuration stays in effect.
type Reloader struct {
	path   string
	opts   []Option
	logger *slog.Logger

	mu      sync.Mutex
	current *Config
	subs    []func(*Config)

	w *watcher.Watcher
}

// NewReloader starts watching path. initial is the configuration already
// in effect.
func NewReloader(path string, initial *Config, logger *slog.Logger, opts ...Option) (*Reloader, error) {
	return newReloader(path, initial, logger, 0, opts...)
}

func newReloader(path string, initial *Config, logger *slog.Logger, debounce time.Duration, opts ...Option) (*Reloader, error) {
	r := &Reloader{
		path:    path,
		opts:    opts,
		logger:  logging.WithComponent(logger, "config"),
		current: initial,
	}
	wopts := []watcher.Option{watcher.WithLogger(logger)}
	if debounce > 0 {
		wopts = append(wopts, watcher.WithDebounce(debounce))
	}
	w, err := watcher.New(path, r.handle, wopts...)
	if err != nil {
		return nil, err
	}
	r.w = w
	return r, nil
}

// Subscribe registers fn to receive each reloaded Config. fn runs on the
// watcher goroutine.
func (r *Reloader) Subscribe(fn func(*Config)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Current returns the configuration in effect.
func (r *Reloader) Current() *Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Close stops watching.
func (r *Reloader) Close() error {
	return r.w.Close()
}

func (r *Reloader) handle(ev watcher.Event) {
	if ev.Op.Has(watcher.OpRemove) && !ev.Op.Has(watcher.OpCreate) {
		r.logger.Warn("config file removed; keeping current settings", "path", ev.Path)
		return
	}

	cfg, err := Load(r.path, r.opts...)
	if err != nil {
		r.logger.Warn("config reload failed", "path", ev.Path, "error", err)
		return
	}

	r.mu.Lock()
	r.current = cfg
	subs := slices.Clone(r.subs)
	r.mu.Unlock()

	r.logger.Info("config reloaded", "path", ev.Path, "op", ev.Op.String())
	for _, fn := range subs {
		fn(cfg)
	}
}
