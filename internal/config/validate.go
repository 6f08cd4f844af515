package config

import (
	"errors"
	"strings"

	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/keymap"
)

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, v any) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: v})
	}

	t := c.Timeline
	positive := []struct {
		path string
		v    float64
	}{
		{"timeline.pixelsPerFrame", t.PixelsPerFrame},
		{"timeline.trackHeight", t.TrackHeight},
		{"timeline.clipHeight", t.ClipHeight},
		{"overlay.charWidth", c.Overlay.CharWidth},
		{"overlay.lineHeight", c.Overlay.LineHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			add(p.path, "must be positive", p.v)
		}
	}
	if t.LaneOffset < 0 {
		add("timeline.laneOffset", "must not be negative", t.LaneOffset)
	}
	if t.HandleWidth < 0 || t.DeleteInset < 0 || t.DeleteSize < 0 {
		add("timeline", "handle and delete geometry must not be negative", t.HandleWidth)
	}
	if t.MinDuration <= 0 {
		add("timeline.minDuration", "must be positive", t.MinDuration)
	}
	if t.MinLanes < 1 {
		add("timeline.minLanes", "must be at least 1", t.MinLanes)
	}
	if t.DefaultDuration <= 0 {
		add("timeline.defaultDuration", "must be positive", t.DefaultDuration)
	}

	if m := c.Overlay.MaxPercent; m <= 0 || m > 100 {
		add("overlay.maxPercent", "must be in (0, 100]", m)
	}

	if c.Input.DoubleClickTime <= 0 {
		add("input.doubleClickTime", "must be positive", c.Input.DoubleClickTime)
	}
	if c.Input.DoubleClickDistance < 0 {
		add("input.doubleClickDistance", "must not be negative", c.Input.DoubleClickDistance)
	}
	for _, name := range c.Input.DeleteKeys {
		if key.ByName(name) == key.KeyNone {
			add("input.deleteKeys", "unknown key", name)
		}
	}
	if key.ByName(c.Input.ConfirmKey) == key.KeyNone {
		add("input.confirmKey", "unknown key", c.Input.ConfirmKey)
	}
	if _, err := c.Input.Keymap(); err != nil {
		add("input.bindings", err.Error(), c.Input.Bindings)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add("logging.level", "must be debug, info, warn or error", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format", "must be text or json", c.Logging.Format)
	}

	if c.Playback.FPS <= 0 || c.Playback.FPS > 240 {
		add("playback.fps", "must be in 1..240", c.Playback.FPS)
	}

	return errors.Join(errs...)
}

// Keys resolves the configured delete and confirm key names.
// Unknown names are skipped.
func (i InputConfig) Keys() (deleteKeys []key.Key, confirm key.Key) {
	for _, name := range i.DeleteKeys {
		if k := key.ByName(name); k != key.KeyNone {
			deleteKeys = append(deleteKeys, k)
		}
	}
	confirm = key.ByName(i.ConfirmKey)
	if confirm == key.KeyNone {
		confirm = key.KeyEnter
	}
	return deleteKeys, confirm
}

// Keymap builds the host keymap: the defaults with Bindings applied.
func (i InputConfig) Keymap() (*keymap.Keymap, error) {
	km := keymap.Default()
	if len(i.Bindings) == 0 {
		return km, nil
	}
	overrides := make(map[string][]string, len(i.Bindings))
	for action, chords := range i.Bindings {
		overrides[action] = chords
	}
	if err := km.Override(overrides); err != nil {
		return nil, err
	}
	return km, nil
}
