// Package coords converts between pointer offsets and timeline units.
//
// All conversions are pure. Rounding is half toward positive infinity, so a
// pointer exactly between two frames resolves to the later one regardless
// of drag direction.
package coords

import (
	"errors"
	"math"
)

// ErrInvalidScale indicates a non-positive scale constant.
var ErrInvalidScale = errors.New("scale must be positive")

// Mapper holds the fixed scale constants of a timeline.
type Mapper struct {
	// PixelsPerFrame is the horizontal size of one frame.
	PixelsPerFrame float64

	// TrackHeight is the vertical size of one lane.
	TrackHeight float64

	// LaneOffset is the distance from the top of the surface to lane 0.
	LaneOffset float64
}

// New creates a mapper, validating the scale constants.
func New(pixelsPerFrame, trackHeight, laneOffset float64) (Mapper, error) {
	m := Mapper{
		PixelsPerFrame: pixelsPerFrame,
		TrackHeight:    trackHeight,
		LaneOffset:     laneOffset,
	}
	if err := m.Validate(); err != nil {
		return Mapper{}, err
	}
	return m, nil
}

// Validate reports whether the scale constants are usable.
func (m Mapper) Validate() error {
	if m.PixelsPerFrame <= 0 || m.TrackHeight <= 0 {
		return ErrInvalidScale
	}
	return nil
}

// Round rounds half toward positive infinity.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Frames converts a horizontal pointer offset to a frame count.
func (m Mapper) Frames(offsetX float64) int {
	return Round(offsetX / m.PixelsPerFrame)
}

// Tracks converts a vertical pointer offset to a lane count.
func (m Mapper) Tracks(offsetY float64) int {
	return Round(offsetY / m.TrackHeight)
}

// SeekFrame converts a click offset from the surface's left edge to the
// frame the playhead should move to. It never returns a negative frame.
func (m Mapper) SeekFrame(clickX float64) int {
	return max(0, m.Frames(clickX))
}

// X returns the horizontal position of a frame.
func (m Mapper) X(frame int) float64 {
	return float64(frame) * m.PixelsPerFrame
}

// Width returns the horizontal size of a span of frames.
func (m Mapper) Width(frames int) float64 {
	return float64(frames) * m.PixelsPerFrame
}

// LaneY returns the top of a lane.
func (m Mapper) LaneY(track int) float64 {
	return float64(track)*m.TrackHeight + m.LaneOffset
}

// Lane returns the lane containing vertical position y, or -1 above lane 0.
func (m Mapper) Lane(y float64) int {
	if y < m.LaneOffset {
		return -1
	}
	return int(math.Floor((y - m.LaneOffset) / m.TrackHeight))
}
