package timeline

import (
	"fmt"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/key"
	"github.com/dshills/adreel/internal/timeline/coords"
)

// Config holds the surface geometry and behavior constants.
type Config struct {
	PixelsPerFrame  float64
	TrackHeight     float64
	LaneOffset      float64
	ClipHeight      float64
	HandleWidth     float64
	DeleteInset     float64
	DeleteSize      float64
	MinDuration     int
	MinLanes        int
	DefaultDuration int
	DeleteKeys      []key.Key
}

// DefaultConfig returns the standard editor geometry.
func DefaultConfig() Config {
	return Config{
		PixelsPerFrame:  2,
		TrackHeight:     40,
		LaneOffset:      30,
		ClipHeight:      32,
		HandleWidth:     8,
		DeleteInset:     12,
		DeleteSize:      16,
		MinDuration:     clip.MinDuration,
		MinLanes:        6,
		DefaultDuration: 900,
		DeleteKeys:      []key.Key{key.KeyDelete, key.KeyBackspace},
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := c.Mapper(); err != nil {
		return fmt.Errorf("timeline config: %w", err)
	}
	if c.MinDuration <= 0 {
		return fmt.Errorf("timeline config: minDuration must be positive, got %d", c.MinDuration)
	}
	if c.ClipHeight <= 0 || c.HandleWidth < 0 {
		return fmt.Errorf("timeline config: invalid clip geometry")
	}
	return nil
}

// Mapper returns the coordinate mapper for this geometry.
func (c Config) Mapper() (coords.Mapper, error) {
	return coords.New(c.PixelsPerFrame, c.TrackHeight, c.LaneOffset)
}
