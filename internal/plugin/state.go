package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/adreel/internal/logging"
)

// DefaultTimeout bounds a single script or hook execution.
const DefaultTimeout = 200 * time.Millisecond

// State wraps a restricted gopher-lua state. gopher-lua states are not
// goroutine-safe; State is used from the host's event loop only.
type State struct {
	L       *lua.LState
	timeout time.Duration
	closed  bool
}

// NewState creates a restricted Lua state. print is redirected to logger.
func NewState(timeout time.Duration, logger *slog.Logger) *State {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger = logging.OrDiscard(logger)
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		logger.Info("script output", "text", joinArgs(L))
		return 0
	}))

	return &State{L: L, timeout: timeout}
}

// openSafeLibraries opens only the libraries without host access.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// joinArgs renders every argument with tostring semantics.
func joinArgs(L *lua.LState) string {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	return strings.Join(parts, " ")
}

// DoString executes a chunk of Lua source.
func (s *State) DoString(code string) error {
	if s.closed {
		return ErrStateClosed
	}
	fn, err := s.L.LoadString(code)
	if err != nil {
		return err
	}
	_, err = s.call(fn)
	return err
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	if s.closed {
		return ErrStateClosed
	}
	fn, err := s.L.LoadFile(path)
	if err != nil {
		return err
	}
	_, err = s.call(fn)
	return err
}

// Function returns the global function name, or nil if it is not defined.
func (s *State) Function(name string) *lua.LFunction {
	if s.closed {
		return nil
	}
	fn, _ := s.L.GetGlobal(name).(*lua.LFunction)
	return fn
}

// Call calls fn with args under the timeout and returns its first result.
func (s *State) Call(fn *lua.LFunction, args ...lua.LValue) (lua.LValue, error) {
	if s.closed {
		return lua.LNil, ErrStateClosed
	}
	return s.call(fn, args...)
}

func (s *State) call(fn *lua.LFunction, args ...lua.LValue) (ret lua.LValue, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		s.L.SetTop(top)
	}()

	s.L.Push(fn)
	for _, a := range args {
		s.L.Push(a)
	}
	if err := s.L.PCall(len(args), 1, nil); err != nil {
		if ctx.Err() != nil {
			return lua.LNil, fmt.Errorf("%w: %v", ctx.Err(), err)
		}
		return lua.LNil, err
	}
	return s.L.Get(-1), nil
}

// Close releases the Lua state.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
