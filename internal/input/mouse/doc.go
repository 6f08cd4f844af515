// Package mouse provides the pointer model used by the timeline surface and
// the text overlay.
//
// # Core Types
//
// Event represents a raw pointer event with position, button, modifiers,
// and action type:
//
//	event := mouse.Event{
//	    Position:  mouse.Position{X: 100, Y: 50},
//	    Button:    mouse.ButtonLeft,
//	    Action:    mouse.ActionPress,
//	    Timestamp: time.Now(),
//	}
//
// # Click Detection
//
// ClickCounter detects double and triple clicks based on timing and
// position thresholds. The overlay uses it to enter text editing on a
// double click.
//
// # Press Tracking
//
// Tracker remembers where the current press started and whether the
// pointer has moved since, which is how a click is told apart from a drag.
package mouse
