// Package drag implements the clip gesture state machine.
//
// A gesture starts on pointer-down over a clip body or one of its edge
// handles, recomputes a patch from the cumulative pointer offset on every
// move, and ends on pointer-up. There is no cancel transition: the last
// patch computed stands.
package drag

import (
	"log/slog"

	"github.com/dshills/adreel/internal/clip"
	"github.com/dshills/adreel/internal/input/mouse"
	"github.com/dshills/adreel/internal/logging"
	"github.com/dshills/adreel/internal/timeline/coords"
)

// Mode is the state of the machine.
type Mode uint8

const (
	// ModeIdle means no gesture is in flight.
	ModeIdle Mode = iota
	// ModeMoving drags a clip in time and across lanes.
	ModeMoving
	// ModeResizingLeft drags the clip's start edge.
	ModeResizingLeft
	// ModeResizingRight drags the clip's end edge.
	ModeResizingRight
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeMoving:
		return "moving"
	case ModeResizingLeft:
		return "resizing-left"
	case ModeResizingRight:
		return "resizing-right"
	default:
		return "unknown"
	}
}

// Session is the snapshot captured when a gesture starts.
type Session struct {
	ClipID   string
	Mode     Mode
	Origin   mouse.Position
	Snapshot clip.Placement
}

// Machine owns at most one in-flight gesture. It belongs to a single
// surface instance and is driven from that surface's event loop.
type Machine struct {
	mapper      coords.Mapper
	minDuration int
	session     *Session
	logger      *slog.Logger
}

// New creates an idle machine.
func New(mapper coords.Mapper, minDuration int, logger *slog.Logger) *Machine {
	if minDuration <= 0 {
		minDuration = clip.MinDuration
	}
	return &Machine{
		mapper:      mapper,
		minDuration: minDuration,
		logger:      logging.WithComponent(logger, "drag"),
	}
}

// SetMapper replaces the scale constants used for subsequent moves.
func (m *Machine) SetMapper(mapper coords.Mapper) {
	m.mapper = mapper
}

// Mode returns the current state.
func (m *Machine) Mode() Mode {
	if m.session == nil {
		return ModeIdle
	}
	return m.session.Mode
}

// Session returns the in-flight session, if any.
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Begin starts a gesture on c. A session already in flight is replaced;
// it can only be left over from a pointer-up that never arrived.
// Beginning with ModeIdle does nothing.
func (m *Machine) Begin(c *clip.Clip, mode Mode, origin mouse.Position) {
	if mode == ModeIdle || c == nil {
		return
	}
	if m.session != nil {
		m.logger.Debug("replacing stale gesture", "clip_id", m.session.ClipID, "mode", m.session.Mode)
	}
	m.session = &Session{
		ClipID:   c.ID,
		Mode:     mode,
		Origin:   origin,
		Snapshot: clip.Normalize(c),
	}
	m.logger.Debug("gesture started", "clip_id", c.ID, "mode", mode)
}

// Move computes the patch for the pointer at pos. It reports false when
// idle or when the gesture yields no patch for this position.
func (m *Machine) Move(pos mouse.Position) (clip.Patch, bool) {
	s := m.session
	if s == nil {
		return clip.Patch{}, false
	}

	delta := pos.Sub(s.Origin)
	deltaFrames := m.mapper.Frames(float64(delta.X))
	deltaTracks := m.mapper.Tracks(float64(delta.Y))
	snap := s.Snapshot

	switch s.Mode {
	case ModeMoving:
		return clip.Patch{
			StartAt:    clip.Int(max(0, snap.StartAt+deltaFrames)),
			TrackIndex: clip.Int(max(0, snap.Track+deltaTracks)),
		}, true

	case ModeResizingLeft:
		newStart := max(0, snap.StartAt+deltaFrames)
		frameDiff := newStart - snap.StartAt
		newDuration := max(m.minDuration, snap.Duration-frameDiff)
		// Strictly greater: a left resize never commits at the minimum.
		if newDuration > m.minDuration {
			return clip.Patch{
				StartAt:          clip.Int(newStart),
				DurationInFrames: clip.Int(newDuration),
			}, true
		}
		return clip.Patch{}, false

	case ModeResizingRight:
		return clip.Patch{
			DurationInFrames: clip.Int(max(m.minDuration, snap.Duration+deltaFrames)),
		}, true
	}

	return clip.Patch{}, false
}

// End finishes the gesture and returns the session that ended.
func (m *Machine) End() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	s := *m.session
	m.session = nil
	m.logger.Debug("gesture ended", "clip_id", s.ClipID, "mode", s.Mode)
	return s, true
}
