package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/input/mouse"
)

// EventKind classifies a decoded terminal event.
type EventKind uint8

const (
	// EventNone is an event the application ignores.
	EventNone EventKind = iota
	// EventKey is a key press.
	EventKey
	// EventMouse is a pointer press, move or release.
	EventMouse
	// EventResize reports a new screen size.
	EventResize
	// EventInterrupt carries data posted with Terminal.Interrupt.
	EventInterrupt
)

// Event is a decoded terminal event. Mouse positions are in cells.
type Event struct {
	Kind   EventKind
	Key    key.Event
	Mouse  mouse.Event
	Width  int
	Height int
	Data   any
}

// Decoder turns tcell events into key and pointer events. tcell reports
// the buttons held at each mouse event; the decoder remembers the previous
// state to tell presses, drags and releases apart.
type Decoder struct {
	held mouse.Button
}

// Decode converts one tcell event.
func (d *Decoder) Decode(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Kind: EventKey, Key: convertKey(e)}
	case *tcell.EventMouse:
		return d.decodeMouse(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Kind: EventResize, Width: w, Height: h}
	case *tcell.EventInterrupt:
		return Event{Kind: EventInterrupt, Data: e.Data()}
	default:
		return Event{Kind: EventNone}
	}
}

func (d *Decoder) decodeMouse(e *tcell.EventMouse) Event {
	x, y := e.Position()
	mask := e.Buttons()
	if mask&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 &&
		mask&(tcell.Button1|tcell.Button2|tcell.Button3) == 0 {
		return Event{Kind: EventNone}
	}

	btn := convertButton(mask)
	me := mouse.Event{
		Position:  mouse.Position{X: x, Y: y},
		Modifiers: convertMod(e.Modifiers()),
		Timestamp: e.When(),
	}

	switch {
	case d.held == mouse.ButtonNone && btn != mouse.ButtonNone:
		d.held = btn
		me.Action = mouse.ActionPress
		me.Button = btn
	case d.held != mouse.ButtonNone && btn == mouse.ButtonNone:
		me.Action = mouse.ActionRelease
		me.Button = d.held
		d.held = mouse.ButtonNone
	default:
		me.Action = mouse.ActionMove
		me.Button = d.held
	}
	return Event{Kind: EventMouse, Mouse: me}
}

// convertButton picks the primary button in mask.
func convertButton(mask tcell.ButtonMask) mouse.Button {
	switch {
	case mask&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case mask&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	case mask&tcell.Button2 != 0:
		return mouse.ButtonRight
	default:
		return mouse.ButtonNone
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mod key.Modifier
	if m&tcell.ModShift != 0 {
		mod |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mod |= key.ModMeta
	}
	return mod
}

// convertKey maps a tcell key event. Control characters become a rune with
// ModCtrl, so Ctrl-C arrives as 'c' with Ctrl held.
func convertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	ev := key.Event{Modifiers: mods, Timestamp: e.When()}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		if e.Rune() == ' ' {
			ev.Key = key.KeySpace
			return ev
		}
		ev.Key = key.KeyRune
		ev.Rune = e.Rune()
		// The rune already carries the case.
		ev.Modifiers &^= key.ModShift
	case tcell.KeyEscape:
		ev.Key = key.KeyEscape
	case tcell.KeyEnter:
		ev.Key = key.KeyEnter
	case tcell.KeyTab:
		ev.Key = key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev.Key = key.KeyBackspace
	case tcell.KeyDelete:
		ev.Key = key.KeyDelete
	case tcell.KeyHome:
		ev.Key = key.KeyHome
	case tcell.KeyEnd:
		ev.Key = key.KeyEnd
	case tcell.KeyUp:
		ev.Key = key.KeyUp
	case tcell.KeyDown:
		ev.Key = key.KeyDown
	case tcell.KeyLeft:
		ev.Key = key.KeyLeft
	case tcell.KeyRight:
		ev.Key = key.KeyRight
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ev.Key = key.KeyRune
			ev.Rune = rune('a' + (k - tcell.KeyCtrlA))
			ev.Modifiers |= key.ModCtrl
		}
	}
	return ev
}
