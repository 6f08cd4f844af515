package plugin

import (
	"errors"
	"fmt"
)

// Plugin errors.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNilAPI is returned when a host is created without a timeline API.
	ErrNilAPI = errors.New("plugin: nil timeline API")
)

// ScriptError reports a failure inside a Lua script.
type ScriptError struct {
	// Hook is the hook being run, or "load" for the script body.
	Hook string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Hook, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
