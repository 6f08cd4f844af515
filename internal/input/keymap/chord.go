package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/adreel/internal/input/key"
)

// Parse errors
var (
	ErrEmptyChord   = errors.New("empty key chord")
	ErrInvalidChord = errors.New("invalid key chord")
)

// Chord is a single key with its modifiers, in the form bindings match
// against. Shift is dropped for character keys because the rune already
// carries the case.
type Chord struct {
	Key  key.Key
	Rune rune
	Mods key.Modifier
}

// ChordOf returns the chord a key event matches.
func ChordOf(ev key.Event) Chord {
	if ev.Key == key.KeyRune && ev.Rune == ' ' {
		return Chord{Key: key.KeySpace, Mods: ev.Modifiers}
	}
	return normalize(Chord{Key: ev.Key, Rune: ev.Rune, Mods: ev.Modifiers})
}

func normalize(c Chord) Chord {
	if c.Key != key.KeyRune {
		c.Rune = 0
		return c
	}
	c.Mods &^= key.ModShift
	// Terminals report Ctrl+letter without case.
	if c.Mods.Has(key.ModCtrl) {
		c.Rune = unicode.ToLower(c.Rune)
	}
	return c
}

// String returns the chord in "Ctrl+Left" form.
func (c Chord) String() string {
	return key.Event{Key: c.Key, Rune: c.Rune, Modifiers: c.Mods}.String()
}

// ParseChord parses a chord specification.
//
// Supported formats:
//   - Single character: "t", "Q", "?"
//   - Key names: "Space", "Left", "Esc"
//   - Modifier style: "Ctrl+Q", "Alt+Left"
//   - Vim style: "<C-q>", "<A-Left>", "<Esc>"
func ParseChord(spec string) (Chord, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Chord{}, ErrEmptyChord
	}
	if runes := []rune(spec); len(runes) == 1 {
		return chordFor(spec, key.ModNone)
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if strings.Contains(spec, "+") {
		return parseModifierStyle(spec)
	}
	return chordFor(spec, key.ModNone)
}

// MustParseChord is like ParseChord but panics on error.
func MustParseChord(spec string) Chord {
	c, err := ParseChord(spec)
	if err != nil {
		panic(err)
	}
	return c
}

func parseVimStyle(inner string) (Chord, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Chord{}, ErrInvalidChord
	}
	parts := strings.Split(inner, "-")
	var mods key.Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods |= key.ModCtrl
		case "a":
			mods |= key.ModAlt
		case "s":
			mods |= key.ModShift
		case "m", "d":
			mods |= key.ModMeta
		default:
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidChord, p)
		}
	}
	return chordFor(parts[len(parts)-1], mods)
}

func parseModifierStyle(spec string) (Chord, error) {
	parts := strings.Split(spec, "+")
	var mods key.Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := modifierByName(p)
		if mod == key.ModNone {
			return Chord{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidChord, p)
		}
		mods |= mod
	}
	return chordFor(parts[len(parts)-1], mods)
}

func modifierByName(name string) key.Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control", "c":
		return key.ModCtrl
	case "alt", "option", "opt", "a":
		return key.ModAlt
	case "shift", "s":
		return key.ModShift
	case "meta", "cmd", "command", "super", "m":
		return key.ModMeta
	}
	return key.ModNone
}

// chordFor resolves the key part of a specification.
func chordFor(part string, mods key.Modifier) (Chord, error) {
	part = strings.TrimSpace(part)
	if part == "" {
		return Chord{}, ErrInvalidChord
	}
	runes := []rune(part)
	if len(runes) == 1 {
		if runes[0] == ' ' {
			return Chord{Key: key.KeySpace, Mods: mods}, nil
		}
		return normalize(Chord{Key: key.KeyRune, Rune: runes[0], Mods: mods}), nil
	}
	if k := key.ByName(part); k != key.KeyNone {
		return Chord{Key: k, Mods: mods}, nil
	}
	return Chord{}, fmt.Errorf("%w: %q", ErrInvalidChord, part)
}
