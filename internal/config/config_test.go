package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/adreel/internal/input/key"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", WithoutEnv())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Default()
	if cfg.Timeline != want.Timeline {
		t.Errorf("Timeline = %+v, want %+v", cfg.Timeline, want.Timeline)
	}
	if cfg.Input.DoubleClickTime != 400*time.Millisecond {
		t.Errorf("DoubleClickTime = %v", cfg.Input.DoubleClickTime)
	}
	if len(cfg.Input.DeleteKeys) != 2 || cfg.Input.DeleteKeys[1] != "Backspace" {
		t.Errorf("DeleteKeys = %v", cfg.Input.DeleteKeys)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "adreel.toml", `
[timeline]
pixelsPerFrame = 4
minLanes = 3

[input]
doubleClickTime = "250ms"
deleteKeys = ["Delete"]

[logging]
level = "debug"
`)

	cfg, err := Load(path, WithoutEnv())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeline.PixelsPerFrame != 4 || cfg.Timeline.MinLanes != 3 {
		t.Errorf("Timeline = %+v", cfg.Timeline)
	}
	if cfg.Timeline.TrackHeight != 40 {
		t.Errorf("TrackHeight = %v, want default 40 kept", cfg.Timeline.TrackHeight)
	}
	if cfg.Input.DoubleClickTime != 250*time.Millisecond {
		t.Errorf("DoubleClickTime = %v", cfg.Input.DoubleClickTime)
	}
	if len(cfg.Input.DeleteKeys) != 1 {
		t.Errorf("DeleteKeys = %v, want file list to replace default", cfg.Input.DeleteKeys)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "adreel.yaml", `
timeline:
  trackHeight: 60
overlay:
  maxPercent: 80
playback:
  fps: 24
`)

	cfg, err := Load(path, WithoutEnv())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeline.TrackHeight != 60 || cfg.Overlay.MaxPercent != 80 || cfg.Playback.FPS != 24 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeline.PixelsPerFrame != 2 {
		t.Errorf("PixelsPerFrame = %v, want default", cfg.Timeline.PixelsPerFrame)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "adreel.toml", `
[timeline]
pixelsPerFrame = 4
`)
	t.Setenv("ADREEL_TIMELINE_PIXELS_PER_FRAME", "1")
	t.Setenv("ADREEL_LOG_LEVEL", "warn")
	t.Setenv("ADREEL_INPUT_DELETE_KEYS", "Delete")
	t.Setenv("ADREEL_INPUT_DOUBLE_CLICK_TIME", "1s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Timeline.PixelsPerFrame != 1 {
		t.Errorf("PixelsPerFrame = %v, want env value 1", cfg.Timeline.PixelsPerFrame)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	if len(cfg.Input.DeleteKeys) != 1 || cfg.Input.DeleteKeys[0] != "Delete" {
		t.Errorf("DeleteKeys = %v", cfg.Input.DeleteKeys)
	}
	if cfg.Input.DoubleClickTime != time.Second {
		t.Errorf("DoubleClickTime = %v", cfg.Input.DoubleClickTime)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"), WithoutEnv())
		if !errors.Is(err, ErrFileNotFound) {
			t.Errorf("error = %v, want ErrFileNotFound", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := writeFile(t, "adreel.ini", "x=1")
		if _, err := Load(path, WithoutEnv()); err == nil {
			t.Error("Load() accepted .ini")
		}
	})

	t.Run("parse error", func(t *testing.T) {
		path := writeFile(t, "adreel.toml", "[timeline\npixelsPerFrame = ")
		_, err := Load(path, WithoutEnv())
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
		if pe.Path != path {
			t.Errorf("ParseError.Path = %q", pe.Path)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeFile(t, "adreel.yaml", "timeline:\n  pixelsPerFrame: 0\n")
		_, err := Load(path, WithoutEnv())
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("error = %v, want ErrValidationFailed", err)
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"zero scale", func(c *Config) { c.Timeline.PixelsPerFrame = 0 }, "timeline.pixelsPerFrame"},
		{"negative track height", func(c *Config) { c.Timeline.TrackHeight = -1 }, "timeline.trackHeight"},
		{"zero min duration", func(c *Config) { c.Timeline.MinDuration = 0 }, "timeline.minDuration"},
		{"max percent over 100", func(c *Config) { c.Overlay.MaxPercent = 120 }, "overlay.maxPercent"},
		{"unknown delete key", func(c *Config) { c.Input.DeleteKeys = KeyList{"Hyper"} }, "input.deleteKeys"},
		{"unknown confirm key", func(c *Config) { c.Input.ConfirmKey = "" }, "input.confirmKey"},
		{"unknown action", func(c *Config) { c.Input.Bindings = map[string]KeyList{"file.save": {"s"}} }, "input.bindings"},
		{"bad chord", func(c *Config) { c.Input.Bindings = map[string]KeyList{"app.quit": {"Hyper+q"}} }, "input.bindings"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"zero fps", func(c *Config) { c.Playback.FPS = 0 }, "playback.fps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("Path = %q, want %q", ve.Path, tt.path)
			}
		})
	}
}

func TestInputKeys(t *testing.T) {
	in := InputConfig{DeleteKeys: KeyList{"del", "bogus", "Backspace"}, ConfirmKey: "return"}
	keys, confirm := in.Keys()
	if len(keys) != 2 || keys[0] != key.KeyDelete || keys[1] != key.KeyBackspace {
		t.Errorf("Keys() delete = %v", keys)
	}
	if confirm != key.KeyEnter {
		t.Errorf("Keys() confirm = %v", confirm)
	}
}

func TestLoadBindings(t *testing.T) {
	path := writeFile(t, "adreel.toml", `
[input.bindings]
"app.quit" = ["Ctrl+x", "<C-q>"]
"view.scrollHome" = "g"
`)

	cfg, err := Load(path, WithoutEnv())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	km, err := cfg.Input.Keymap()
	if err != nil {
		t.Fatalf("Keymap() error = %v", err)
	}
	if action, _ := km.Lookup(key.NewRuneEvent('x', key.ModCtrl)); action != "app.quit" {
		t.Errorf("Ctrl+x = %q, want app.quit", action)
	}
	if _, ok := km.Lookup(key.NewRuneEvent('q', key.ModNone)); ok {
		t.Error("q should be unbound after override")
	}
	if action, _ := km.Lookup(key.NewRuneEvent('g', key.ModNone)); action != "view.scrollHome" {
		t.Errorf("g = %q, want view.scrollHome", action)
	}
	if action, _ := km.Lookup(key.NewRuneEvent('t', key.ModNone)); action != "clip.addText" {
		t.Errorf("t = %q, want clip.addText", action)
	}
}

func TestFrameInterval(t *testing.T) {
	if got := (PlaybackConfig{FPS: 25}).FrameInterval(); got != 40*time.Millisecond {
		t.Errorf("FrameInterval() = %v", got)
	}
	if got := (PlaybackConfig{}).FrameInterval(); got != time.Second/30 {
		t.Errorf("FrameInterval() zero fps = %v", got)
	}
}

func TestReloaderDeliversValidChanges(t *testing.T) {
	path := writeFile(t, "adreel.yaml", "timeline:\n  pixelsPerFrame: 2\n")
	initial, err := Load(path, WithoutEnv())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	r, err := newReloader(path, initial, nil, 20*time.Millisecond, WithoutEnv())
	if err != nil {
		t.Fatalf("newReloader() error = %v", err)
	}
	defer r.Close()

	got := make(chan *Config, 4)
	second := make(chan *Config, 4)
	r.Subscribe(func(c *Config) { got <- c })
	r.Subscribe(func(c *Config) { second <- c })

	if err := os.WriteFile(path, []byte("timeline:\n  pixelsPerFrame: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-got:
		t.Fatalf("invalid config delivered: %+v", c.Timeline)
	case <-time.After(300 * time.Millisecond):
	}
	if r.Current() != initial {
		t.Error("invalid reload replaced current config")
	}

	if err := os.WriteFile(path, []byte("timeline:\n  pixelsPerFrame: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case c := <-got:
		if c.Timeline.PixelsPerFrame != 5 {
			t.Errorf("reloaded PixelsPerFrame = %v", c.Timeline.PixelsPerFrame)
		}
		if r.Current() != c {
			t.Error("Current() not updated")
		}
		select {
		case c2 := <-second:
			if c2 != c {
				t.Error("subscribers received different configs")
			}
		case <-time.After(time.Second):
			t.Error("second subscriber not called")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no reload delivered")
	}
}
