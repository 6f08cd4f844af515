// Package focus tracks which target currently owns keyboard input.
//
// The selection controller consults the tracker before acting on the
// delete key: when a text-entry target is focused, keys belong to it.
package focus

// Kind classifies a focus target.
type Kind uint8

const (
	// KindNone means nothing has focus.
	KindNone Kind = iota
	// KindSurface is a non-text widget such as the timeline surface.
	KindSurface
	// KindTextEntry is an element that consumes typed characters.
	KindTextEntry
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSurface:
		return "surface"
	case KindTextEntry:
		return "text-entry"
	default:
		return "none"
	}
}

// Target identifies a focusable element.
type Target struct {
	ID   string
	Kind Kind
}

// Tracker records the focused target and notifies it when focus leaves.
// It is not safe for concurrent use.
type Tracker struct {
	current Target
	onBlur  func()
}

// NewTracker creates a tracker with nothing focused.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Focus moves focus to t. The previous target's blur callback runs first,
// unless t is the same target. onBlur may be nil.
func (tr *Tracker) Focus(t Target, onBlur func()) {
	if tr.current == t && t.Kind != KindNone {
		tr.onBlur = onBlur
		return
	}
	tr.blur()
	tr.current = t
	tr.onBlur = onBlur
}

// Blur removes focus from the current target, running its blur callback.
func (tr *Tracker) Blur() {
	tr.blur()
}

// Release clears focus only if t still holds it. The blur callback is not
// run; the target is giving focus up itself.
func (tr *Tracker) Release(t Target) {
	if tr.current == t {
		tr.current = Target{}
		tr.onBlur = nil
	}
}

func (tr *Tracker) blur() {
	fn := tr.onBlur
	tr.current = Target{}
	tr.onBlur = nil
	if fn != nil {
		fn()
	}
}

// Current returns the focused target.
func (tr *Tracker) Current() Target {
	return tr.current
}

// TextEntryFocused reports whether a text-entry target has focus.
func (tr *Tracker) TextEntryFocused() bool {
	return tr.current.Kind == KindTextEntry
}
