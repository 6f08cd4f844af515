// Package key provides the keyboard model shared by the timeline surface,
// the text overlay and the terminal host.
//
// Events carry a Key and, for character keys, the Rune typed:
//
//	ev := key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
//	if ev.Is(key.KeyDelete, key.KeyBackspace) {
//	    // delete the selection
//	}
//
// Configuration refers to keys by name; ByName resolves "Delete",
// "Backspace", "Enter" and the other special names case-insensitively.
package key
