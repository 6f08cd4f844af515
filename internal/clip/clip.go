package clip

import (
	"fmt"
	"strings"
)

// Positional defaults substituted when a record omits a field.
const (
	// DefaultDuration is used when DurationInFrames is unset.
	DefaultDuration = 150

	// MinDuration is the shortest duration a resize may produce.
	MinDuration = 30
)

// Kind identifies what a clip carries.
type Kind uint8

const (
	// KindVideo is a video segment. It is the zero value so that records
	// with an unrecognized type render the way video clips do.
	KindVideo Kind = iota
	// KindAudio is an audio segment.
	KindAudio
	// KindText is an on-canvas text overlay.
	KindText
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind parses a wire name. Unknown names are reported as an error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	case "text":
		return KindText, nil
	default:
		return KindVideo, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// as KindVideo rather than failing the whole collection.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, _ := ParseKind(string(b))
	*k = parsed
	return nil
}

// Visual describes how a kind is drawn on the timeline.
type Visual struct {
	// Icon is the glyph drawn before the label.
	Icon rune
	// Fill is the clip body color.
	Fill string
	// Border is the clip outline color.
	Border string
	// Ink is the icon color.
	Ink string
}

// Visual returns the drawing attributes for the kind.
// Every kind must have a case here; the default panics so a new kind
// without visuals fails loudly in tests.
func (k Kind) Visual() Visual {
	switch k {
	case KindVideo:
		return Visual{Icon: '▶', Fill: "#dbeafe", Border: "#93c5fd", Ink: "#1d4ed8"}
	case KindAudio:
		return Visual{Icon: '♪', Fill: "#dcfce7", Border: "#86efac", Ink: "#15803d"}
	case KindText:
		return Visual{Icon: 'T', Fill: "#f3e8ff", Border: "#d8b4fe", Ink: "#7e22ce"}
	default:
		panic(fmt.Sprintf("clip: no visual for kind %d", k))
	}
}

// Clip is a placed segment on the timeline.
type Clip struct {
	ID               string `json:"id" yaml:"id"`
	Kind             Kind   `json:"type" yaml:"type"`
	StartAt          int    `json:"startAt,omitempty" yaml:"startAt,omitempty"`
	DurationInFrames int    `json:"durationInFrames,omitempty" yaml:"durationInFrames,omitempty"`
	TrackIndex       int    `json:"trackIndex,omitempty" yaml:"trackIndex,omitempty"`
	Title            string `json:"title,omitempty" yaml:"title,omitempty"`
	Content          string `json:"content,omitempty" yaml:"content,omitempty"`
	Style            *Style `json:"style,omitempty" yaml:"style,omitempty"`
}

// Label returns the display text: content for text clips, title otherwise.
func (c *Clip) Label() string {
	switch c.Kind {
	case KindText:
		return c.Content
	case KindVideo, KindAudio:
		return c.Title
	default:
		return c.Title
	}
}

// Placement is a clip's position with defaults substituted.
type Placement struct {
	StartAt  int
	Duration int
	Track    int
}

// End returns the first frame after the clip.
func (p Placement) End() int {
	return p.StartAt + p.Duration
}

// Normalize returns the clip's placement with unset fields defaulted.
// A zero duration is treated as unset.
func Normalize(c *Clip) Placement {
	p := Placement{
		StartAt:  c.StartAt,
		Duration: c.DurationInFrames,
		Track:    c.TrackIndex,
	}
	if p.Duration == 0 {
		p.Duration = DefaultDuration
	}
	return p
}
