package focus

import "testing"

func TestTrackerBlurCallback(t *testing.T) {
	tr := NewTracker()
	edit := Target{ID: "caption", Kind: KindTextEntry}

	blurred := 0
	tr.Focus(edit, func() { blurred++ })
	if !tr.TextEntryFocused() {
		t.Fatal("TextEntryFocused() = false after focusing text entry")
	}

	tr.Focus(Target{ID: "timeline", Kind: KindSurface}, nil)
	if blurred != 1 {
		t.Errorf("blur callback ran %d times, want 1", blurred)
	}
	if tr.TextEntryFocused() {
		t.Error("TextEntryFocused() = true after focus moved")
	}
	if tr.Current().ID != "timeline" {
		t.Errorf("Current() = %+v", tr.Current())
	}
}

func TestTrackerRefocusSameTarget(t *testing.T) {
	tr := NewTracker()
	edit := Target{ID: "caption", Kind: KindTextEntry}

	blurred := 0
	tr.Focus(edit, func() { blurred++ })
	tr.Focus(edit, func() { blurred += 10 })
	if blurred != 0 {
		t.Errorf("refocus ran blur callback: %d", blurred)
	}
	tr.Blur()
	if blurred != 10 {
		t.Errorf("blur ran %d, want latest callback only", blurred)
	}
	if tr.Current().Kind != KindNone {
		t.Errorf("Current() = %+v after Blur", tr.Current())
	}
}

func TestTrackerRelease(t *testing.T) {
	tr := NewTracker()
	edit := Target{ID: "caption", Kind: KindTextEntry}
	other := Target{ID: "other", Kind: KindTextEntry}

	called := false
	tr.Focus(edit, func() { called = true })
	tr.Release(other)
	if tr.Current() != edit {
		t.Error("Release of non-focused target cleared focus")
	}
	tr.Release(edit)
	if called {
		t.Error("Release ran the blur callback")
	}
	if tr.TextEntryFocused() {
		t.Error("focus still held after Release")
	}
}

func TestKindString(t *testing.T) {
	if KindTextEntry.String() != "text-entry" || KindSurface.String() != "surface" || KindNone.String() != "none" {
		t.Error("Kind.String() mismatch")
	}
}
