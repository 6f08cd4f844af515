package timeline

import "github.com/dshills/adreel/internal/clip"

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Lane is one horizontal track background.
type Lane struct {
	Index int
	Y     float64
	H     float64
}

// ClipBox is the rendered form of one clip.
type ClipBox struct {
	ID          string
	Kind        clip.Kind
	Visual      clip.Visual
	Label       string
	Placement   clip.Placement
	Rect        Rect
	LeftHandle  Rect
	RightHandle Rect
	Selected    bool

	// Delete is the inline delete affordance; nil unless Selected.
	Delete *Rect

	// Clip is the record this box was built from.
	Clip *clip.Clip
}

// Layout is everything needed to draw the surface.
type Layout struct {
	Width     float64
	Height    float64
	Lanes     []Lane
	PlayheadX float64

	// Clips are in paint order; the selected clip is painted last.
	Clips []ClipBox
}

// laneCount returns how many lanes to draw: at least minLanes, and always
// one empty lane below the highest used track.
func laneCount(minLanes, maxTrack int) int {
	return max(minLanes, maxTrack+2)
}

func (s *Surface) layout() Layout {
	cfg := s.cfg
	m := s.mapper

	duration := s.props.Duration
	if duration <= 0 {
		duration = cfg.DefaultDuration
	}

	maxEnd, maxTrack := 0, -1
	boxes := make([]ClipBox, 0, len(s.props.Items))
	var selected *ClipBox

	for _, c := range s.props.Items {
		p := clip.Normalize(c)
		maxEnd = max(maxEnd, p.End())
		maxTrack = max(maxTrack, p.Track)

		r := Rect{
			X: m.X(p.StartAt),
			Y: m.LaneY(p.Track),
			W: m.Width(p.Duration),
			H: cfg.ClipHeight,
		}
		box := ClipBox{
			ID:          c.ID,
			Kind:        c.Kind,
			Visual:      c.Kind.Visual(),
			Label:       c.Label(),
			Placement:   p,
			Rect:        r,
			LeftHandle:  Rect{X: r.X, Y: r.Y, W: cfg.HandleWidth, H: r.H},
			RightHandle: Rect{X: r.X + r.W - cfg.HandleWidth, Y: r.Y, W: cfg.HandleWidth, H: r.H},
			Clip:        c,
		}
		if s.sel.IsSelected(c.ID) {
			box.Selected = true
			box.Delete = &Rect{
				X: r.X + r.W - cfg.DeleteInset - cfg.DeleteSize,
				Y: r.Y + (r.H-cfg.DeleteSize)/2,
				W: cfg.DeleteSize,
				H: cfg.DeleteSize,
			}
			selected = &box
			continue
		}
		boxes = append(boxes, box)
	}
	if selected != nil {
		boxes = append(boxes, *selected)
	}

	lanes := make([]Lane, laneCount(cfg.MinLanes, maxTrack))
	for i := range lanes {
		lanes[i] = Lane{Index: i, Y: m.LaneY(i), H: cfg.TrackHeight}
	}

	return Layout{
		Width:     m.Width(max(duration, maxEnd)),
		Height:    m.LaneY(len(lanes)),
		Lanes:     lanes,
		PlayheadX: m.X(s.props.CurrentTime),
		Clips:     boxes,
	}
}

// HitKind identifies what a pointer position lands on.
type HitKind uint8

const (
	// HitCanvas is empty surface.
	HitCanvas HitKind = iota
	// HitBody is a clip body.
	HitBody
	// HitLeftHandle is a clip's start-edge handle.
	HitLeftHandle
	// HitRightHandle is a clip's end-edge handle.
	HitRightHandle
	// HitDelete is the selected clip's delete affordance.
	HitDelete
)

// String returns the hit kind name.
func (h HitKind) String() string {
	switch h {
	case HitCanvas:
		return "canvas"
	case HitBody:
		return "body"
	case HitLeftHandle:
		return "left-handle"
	case HitRightHandle:
		return "right-handle"
	case HitDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hit is the result of a hit test.
type Hit struct {
	Kind HitKind
	Clip *clip.Clip
}

// hitTest finds the topmost element at (x, y) in l.
func hitTest(l Layout, x, y float64) Hit {
	for i := len(l.Clips) - 1; i >= 0; i-- {
		b := l.Clips[i]
		if !b.Rect.Contains(x, y) {
			continue
		}
		switch {
		case b.Delete != nil && b.Delete.Contains(x, y):
			return Hit{Kind: HitDelete, Clip: b.Clip}
		case b.LeftHandle.Contains(x, y):
			return Hit{Kind: HitLeftHandle, Clip: b.Clip}
		case b.RightHandle.Contains(x, y):
			return Hit{Kind: HitRightHandle, Clip: b.Clip}
		default:
			return Hit{Kind: HitBody, Clip: b.Clip}
		}
	}
	return Hit{Kind: HitCanvas}
}
