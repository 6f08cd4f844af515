package key

import "strings"

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyRune:      "Rune",
}

// aliases maps alternate lower-case spellings to keys.
var aliases = map[string]Key{
	"esc":    KeyEscape,
	"return": KeyEnter,
	"cr":     KeyEnter,
	"bs":     KeyBackspace,
	"del":    KeyDelete,
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsSpecial returns true for keys that are not character keys.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// ByName resolves a key name case-insensitively. It returns KeyNone for
// unknown names.
func ByName(name string) Key {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return KeyNone
	}
	if k, ok := aliases[lower]; ok {
		return k
	}
	for k, n := range keyNames {
		if k == KeyNone || k == KeyRune {
			continue
		}
		if strings.ToLower(n) == lower {
			return k
		}
	}
	return KeyNone
}
