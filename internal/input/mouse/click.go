package mouse

import "time"

// ClickCounter tracks click patterns for double/triple click detection.
type ClickCounter struct {
	maxTime     time.Duration
	maxDistance int

	lastPos   Position
	lastTime  time.Time
	lastCount int
}

// NewClickCounter creates a click counter with the given thresholds.
func NewClickCounter(config Config) *ClickCounter {
	return &ClickCounter{
		maxTime:     config.DoubleClickTime,
		maxDistance: config.DoubleClickDistance,
	}
}

// Record records a click and returns the click count (1, 2, or 3).
// Click count wraps back to 1 after 3.
// If timestamp is zero, time.Now() is used.
func (c *ClickCounter) Record(pos Position, timestamp time.Time) int {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if c.isPartOfSequence(pos, timestamp) {
		c.lastCount++
		if c.lastCount > 3 {
			c.lastCount = 1
		}
	} else {
		c.lastCount = 1
	}

	c.lastPos = pos
	c.lastTime = timestamp

	return c.lastCount
}

func (c *ClickCounter) isPartOfSequence(pos Position, timestamp time.Time) bool {
	if c.lastCount == 0 || c.lastTime.IsZero() {
		return false
	}

	// Negative elapsed time (clock skew) starts a new sequence.
	elapsed := timestamp.Sub(c.lastTime)
	if elapsed < 0 || elapsed > c.maxTime {
		return false
	}

	return pos.Distance(c.lastPos) <= c.maxDistance
}

// Reset clears the click tracking state.
func (c *ClickCounter) Reset() {
	c.lastCount = 0
	c.lastTime = time.Time{}
	c.lastPos = Position{}
}

// ClickType represents the type of click detected.
type ClickType uint8

const (
	// ClickSingle is a single click.
	ClickSingle ClickType = 1
	// ClickDouble is a double click.
	ClickDouble ClickType = 2
	// ClickTriple is a triple click.
	ClickTriple ClickType = 3
)

// String returns a string representation of the click type.
func (c ClickType) String() string {
	switch c {
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	case ClickTriple:
		return "triple"
	default:
		return "unknown"
	}
}
