package plugin

import (
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/logging"
)

// Hook names a script may define.
const (
	HookPatch  = "on_patch"
	HookSelect = "on_select"
	HookDelete = "on_delete"
	HookSeek   = "on_seek"
	HookKey    = "on_key"
)

// API is the host state a script may read and steer.
type API interface {
	Seek(frame int)
	Select(id string)
	Delete(id string)
	Clips() []*clip.Clip
}

// Option configures a Host.
type Option func(*Host)

// WithTimeout bounds each hook call.
func WithTimeout(d time.Duration) Option {
	return func(h *Host) { h.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// Host runs one script against the timeline API.
type Host struct {
	api     API
	state   *State
	timeout time.Duration
	logger  *slog.Logger

	// running is set while a hook executes so host callbacks the hook
	// triggers are not mirrored back into it.
	running bool
}

// New creates a host with the timeline table installed but no script
// loaded.
func New(api API, opts ...Option) (*Host, error) {
	if api == nil {
		return nil, ErrNilAPI
	}
	h := &Host{api: api}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = logging.WithComponent(h.logger, "plugin")
	h.state = NewState(h.timeout, h.logger)
	h.installAPI()
	return h, nil
}

// Load creates a host and runs the script at path.
func Load(path string, api API, opts ...Option) (*Host, error) {
	h, err := New(api, opts...)
	if err != nil {
		return nil, err
	}
	if err := h.state.DoFile(path); err != nil {
		h.Close()
		return nil, &ScriptError{Hook: "load", Err: err}
	}
	h.logger.Info("script loaded", "path", path, "hooks", h.Hooks())
	return h, nil
}

// LoadString runs Lua source in the host.
func (h *Host) LoadString(code string) error {
	if err := h.state.DoString(code); err != nil {
		return &ScriptError{Hook: "load", Err: err}
	}
	return nil
}

// Hooks lists the hooks the script defines.
func (h *Host) Hooks() []string {
	var names []string
	for _, name := range []string{HookPatch, HookSelect, HookDelete, HookSeek, HookKey} {
		if h.state.Function(name) != nil {
			names = append(names, name)
		}
	}
	return names
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.Close()
}

func (h *Host) installAPI() {
	L := h.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"seek": func(L *lua.LState) int {
			h.api.Seek(max(0, checkFrame(L, 1)))
			return 0
		},
		"select": func(L *lua.LState) int {
			h.api.Select(L.OptString(1, ""))
			return 0
		},
		"delete": func(L *lua.LState) int {
			h.api.Delete(L.CheckString(1))
			return 0
		},
		"clips": func(L *lua.LState) int {
			t := L.NewTable()
			for i, c := range h.api.Clips() {
				t.RawSetInt(i+1, clipTable(L, c))
			}
			L.Push(t)
			return 1
		},
		"log": func(L *lua.LState) int {
			h.logger.Info("script log", "text", joinArgs(L))
			return 0
		},
	})
	L.SetGlobal("timeline", mod)
}

// run calls hook if the script defines it. It reports the hook's first
// result, or LNil when the hook is missing or already running.
func (h *Host) run(hook string, args ...lua.LValue) (lua.LValue, error) {
	if h.running {
		return lua.LNil, nil
	}
	fn := h.state.Function(hook)
	if fn == nil {
		return lua.LNil, nil
	}
	h.running = true
	defer func() { h.running = false }()

	ret, err := h.state.Call(fn, args...)
	if err != nil {
		return lua.LNil, &ScriptError{Hook: hook, Err: err}
	}
	return ret, nil
}

// OnPatch mirrors an applied patch.
func (h *Host) OnPatch(id string, p clip.Patch) error {
	_, err := h.run(HookPatch, lua.LString(id), patchTable(h.state.L, p))
	return err
}

// OnSelect mirrors a selection change. An empty id means cleared.
func (h *Host) OnSelect(id string) error {
	_, err := h.run(HookSelect, lua.LString(id))
	return err
}

// OnDelete mirrors a deletion.
func (h *Host) OnDelete(id string) error {
	_, err := h.run(HookDelete, lua.LString(id))
	return err
}

// OnSeek mirrors a playhead move.
func (h *Host) OnSeek(frame int) error {
	_, err := h.run(HookSeek, lua.LNumber(frame))
	return err
}

// OnKey offers a key to the script first. It reports whether the script
// consumed it by returning true.
func (h *Host) OnKey(ev key.Event) (bool, error) {
	ret, err := h.run(HookKey, lua.LString(ev.String()))
	if err != nil {
		return false, err
	}
	return lua.LVAsBool(ret), nil
}
