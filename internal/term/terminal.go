// Package term is the tcell terminal backend: it owns the screen, turns
// tcell events into key and pointer events, and paints the timeline and
// canvas.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Terminal wraps a tcell screen.
type Terminal struct {
	screen  tcell.Screen
	decoder Decoder
	mu      sync.Mutex
}

// New creates a terminal on the process's controlling tty.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewWithScreen wraps an existing screen, such as a simulation screen.
func NewWithScreen(s tcell.Screen) *Terminal {
	return &Terminal{screen: s}
}

// Init initializes the screen with mouse reporting on.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.Clear()
	return nil
}

// Fini restores the terminal. A blocked Poll returns afterwards.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Screen returns the underlying screen for painting.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Show flushes painted content to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync redraws the whole screen.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// Poll blocks for the next event. It reports false once the screen is
// finalized. Poll must be called from a single goroutine.
func (t *Terminal) Poll() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return t.decoder.Decode(ev), true
}

// Interrupt wakes Poll with an EventInterrupt carrying data. It is safe to
// call from any goroutine.
func (t *Terminal) Interrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}
