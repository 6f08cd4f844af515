package mouse

// Tracker tracks the current press and whether it turned into a drag.
type Tracker struct {
	active bool
	moved  bool
	start  Position
	last   Position
}

// Press begins tracking at pos.
func (t *Tracker) Press(pos Position) {
	t.active = true
	t.moved = false
	t.start = pos
	t.last = pos
}

// Move records a pointer position. It reports whether a press is active.
func (t *Tracker) Move(pos Position) bool {
	if !t.active {
		return false
	}
	if !pos.Equal(t.start) {
		t.moved = true
	}
	t.last = pos
	return true
}

// Release ends tracking and reports whether the press was a click, that
// is, released without the pointer having moved.
func (t *Tracker) Release(pos Position) (click bool) {
	if !t.active {
		return false
	}
	t.Move(pos)
	click = !t.moved
	*t = Tracker{}
	return click
}

// Active reports whether a press is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Start returns where the current press began.
func (t *Tracker) Start() Position {
	return t.start
}

// Delta returns the distance moved since the press began.
func (t *Tracker) Delta() Position {
	return t.last.Sub(t.start)
}
