// Package keymap maps key chords to the host's named actions.
//
// A chord is written as a single character ("t"), a key name ("Space"),
// modifier style ("Ctrl+Q") or vim style ("<C-q>"). Default returns the
// built-in bindings; Override replaces the chords of individual actions,
// which is how the input.bindings configuration section is applied.
//
//	km := keymap.Default()
//	if err := km.Override(cfg.Input.Bindings); err != nil {
//	    return err
//	}
//	if action, ok := km.Lookup(ev); ok {
//	    // run action
//	}
package keymap

import (
	"fmt"
	"slices"
	"sort"

	"github.com/dshills/adreel/internal/input/key"
)

// Host actions.
const (
	ActionQuit           = "app.quit"
	ActionAddText        = "clip.addText"
	ActionTogglePlayback = "playback.toggle"
	ActionClearSelection = "selection.clear"
	ActionScrollLeft     = "view.scrollLeft"
	ActionScrollRight    = "view.scrollRight"
	ActionScrollHome     = "view.scrollHome"
)

var defaultBindings = map[string][]string{
	ActionQuit:           {"q"},
	ActionAddText:        {"t"},
	ActionTogglePlayback: {"Space"},
	ActionClearSelection: {"Escape"},
	ActionScrollLeft:     {"Left"},
	ActionScrollRight:    {"Right"},
	ActionScrollHome:     {"Home"},
}

// Actions returns every action name in sorted order.
func Actions() []string {
	names := make([]string, 0, len(defaultBindings))
	for name := range defaultBindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	_, ok := defaultBindings[name]
	return ok
}

// Keymap is a set of chord to action bindings. A chord maps to at most
// one action; binding it again moves it. Keymap is not safe for
// concurrent use.
type Keymap struct {
	actions map[Chord]string
	chords  map[string][]Chord
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{
		actions: make(map[Chord]string),
		chords:  make(map[string][]Chord),
	}
}

// Default returns a keymap holding the built-in bindings.
func Default() *Keymap {
	km := New()
	for action, specs := range defaultBindings {
		for _, spec := range specs {
			km.bind(MustParseChord(spec), action)
		}
	}
	return km
}

// Bind adds spec as a chord for action.
func (km *Keymap) Bind(spec, action string) error {
	if !IsAction(action) {
		return fmt.Errorf("unknown action %q", action)
	}
	c, err := ParseChord(spec)
	if err != nil {
		return err
	}
	km.bind(c, action)
	return nil
}

func (km *Keymap) bind(c Chord, action string) {
	if prev, ok := km.actions[c]; ok {
		km.chords[prev] = slices.DeleteFunc(km.chords[prev], func(x Chord) bool { return x == c })
	}
	km.actions[c] = action
	km.chords[action] = append(km.chords[action], c)
}

// Unbind removes every chord of action.
func (km *Keymap) Unbind(action string) {
	for _, c := range km.chords[action] {
		delete(km.actions, c)
	}
	delete(km.chords, action)
}

// Override replaces the chords of each action in bindings. An empty list
// leaves the action unbound. Nothing changes if any entry is invalid or
// two actions claim the same chord.
func (km *Keymap) Override(bindings map[string][]string) error {
	parsed := make(map[string][]Chord, len(bindings))
	claimed := make(map[Chord]string)
	for action, specs := range bindings {
		if !IsAction(action) {
			return fmt.Errorf("unknown action %q", action)
		}
		for _, spec := range specs {
			c, err := ParseChord(spec)
			if err != nil {
				return fmt.Errorf("%s: %w", action, err)
			}
			if other, ok := claimed[c]; ok && other != action {
				return fmt.Errorf("%s: chord %s already bound to %s", action, c, other)
			}
			claimed[c] = action
			parsed[action] = append(parsed[action], c)
		}
	}
	for action := range bindings {
		km.Unbind(action)
	}
	for action, chords := range parsed {
		for _, c := range chords {
			km.bind(c, action)
		}
	}
	return nil
}

// Lookup returns the action bound to the event's chord.
func (km *Keymap) Lookup(ev key.Event) (string, bool) {
	action, ok := km.actions[ChordOf(ev)]
	return action, ok
}

// Chords returns the chords bound to action in binding order.
func (km *Keymap) Chords(action string) []Chord {
	return slices.Clone(km.chords[action])
}

// Hint returns the first chord bound to action for display, or "" if the
// action is unbound.
func (km *Keymap) Hint(action string) string {
	if cs := km.chords[action]; len(cs) > 0 {
		return cs[0].String()
	}
	return ""
}
