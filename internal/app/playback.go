package app

import (
	"sync"
	"time"
)

// tickEvent is posted to the event loop once per playback frame.
type tickEvent struct{}

// Clock posts a tick at a fixed interval while playing. Ticks are handled
// on the event loop, so the clock never touches host state itself.
type Clock struct {
	mu       sync.Mutex
	interval time.Duration
	post     func(any) error
	onDrop   func()
	stop     chan struct{}
	done     chan struct{}
}

// NewClock creates a stopped clock. post delivers a tick to the event
// loop; onDrop, if set, is called when post fails.
func NewClock(interval time.Duration, post func(any) error, onDrop func()) *Clock {
	return &Clock{interval: interval, post: post, onDrop: onDrop}
}

// Playing reports whether the clock is running.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Toggle starts a stopped clock or stops a running one. It reports whether
// the clock is now playing.
func (c *Clock) Toggle() bool {
	if c.Playing() {
		c.Stop()
		return false
	}
	c.Start()
	return true
}

// Start begins ticking. It is a no-op if the clock is running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.run(c.interval, c.stop, c.done)
}

// Stop halts ticking and waits for the ticker goroutine to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// SetInterval changes the tick period. A running clock restarts with it.
func (c *Clock) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	playing := c.Playing()
	if playing {
		c.Stop()
	}
	c.mu.Lock()
	c.interval = d
	c.mu.Unlock()
	if playing {
		c.Start()
	}
}

func (c *Clock) run(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.post(tickEvent{}); err != nil && c.onDrop != nil {
				c.onDrop()
			}
		}
	}
}
