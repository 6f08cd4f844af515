// Package config provides layered configuration for adreel.
//
// Settings come from three sources in increasing precedence: built-in
// defaults, an optional TOML or YAML file, and ADREEL_* environment
// variables. The merged result decodes into Config, which Validate checks
// before any component sees it. Watcher reloads the file when it changes.
package config

import (
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "ADREEL_"

// Config is the complete application configuration.
type Config struct {
	Timeline TimelineConfig `yaml:"timeline"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
	Plugins  PluginsConfig  `yaml:"plugins"`
	Playback PlaybackConfig `yaml:"playback"`
}

// TimelineConfig holds the timeline geometry.
type TimelineConfig struct {
	PixelsPerFrame  float64 `yaml:"pixelsPerFrame"`
	TrackHeight     float64 `yaml:"trackHeight"`
	LaneOffset      float64 `yaml:"laneOffset"`
	ClipHeight      float64 `yaml:"clipHeight"`
	HandleWidth     float64 `yaml:"handleWidth"`
	DeleteInset     float64 `yaml:"deleteInset"`
	DeleteSize      float64 `yaml:"deleteSize"`
	MinDuration     int     `yaml:"minDuration"`
	MinLanes        int     `yaml:"minLanes"`
	DefaultDuration int     `yaml:"defaultDuration"`
}

// OverlayConfig holds the text overlay settings.
type OverlayConfig struct {
	MaxPercent float64 `yaml:"maxPercent"`
	CharWidth  float64 `yaml:"charWidth"`
	LineHeight float64 `yaml:"lineHeight"`
}

// InputConfig holds pointer and keyboard settings.
type InputConfig struct {
	DoubleClickTime     time.Duration `yaml:"doubleClickTime"`
	DoubleClickDistance int           `yaml:"doubleClickDistance"`
	DeleteKeys          KeyList       `yaml:"deleteKeys"`
	ConfirmKey          string        `yaml:"confirmKey"`
	// Bindings replaces the chords of host actions, keyed by action name
	// such as "app.quit".
	Bindings map[string]KeyList `yaml:"bindings,omitempty"`
}

// KeyList is a list of key names. A single scalar decodes as a one-item
// list, so ADREEL_INPUT_DELETE_KEYS=Delete works.
type KeyList []string

// UnmarshalYAML accepts a scalar or a sequence.
func (l *KeyList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = KeyList{node.Value}
		return nil
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File is the log destination. Empty means discard; the terminal
	// owns stdout.
	File string `yaml:"file"`
}

// PluginsConfig holds the Lua hook settings.
type PluginsConfig struct {
	// Script is the Lua file to load. Empty disables plugins.
	Script string `yaml:"script"`
}

// PlaybackConfig holds the playback clock settings.
type PlaybackConfig struct {
	FPS int `yaml:"fps"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeline: TimelineConfig{
			PixelsPerFrame:  2,
			TrackHeight:     40,
			LaneOffset:      30,
			ClipHeight:      32,
			HandleWidth:     8,
			DeleteInset:     12,
			DeleteSize:      16,
			MinDuration:     30,
			MinLanes:        6,
			DefaultDuration: 900,
		},
		Overlay: OverlayConfig{
			MaxPercent: 90,
			CharWidth:  1,
			LineHeight: 1,
		},
		Input: InputConfig{
			DoubleClickTime:     400 * time.Millisecond,
			DoubleClickDistance: 4,
			DeleteKeys:          KeyList{"Delete", "Backspace"},
			ConfirmKey:          "Enter",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Playback: PlaybackConfig{
			FPS: 30,
		},
	}
}

// FrameInterval returns the playback tick period.
func (p PlaybackConfig) FrameInterval() time.Duration {
	if p.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(p.FPS)
}
