package clip

import (
	"fmt"
	"strings"
)

// Patch is a partial update. Only non-nil fields are applied.
type Patch struct {
	StartAt          *int
	DurationInFrames *int
	TrackIndex       *int
	Content          *string
	Style            *Style
}

// Int returns a pointer to v, for building patches.
func Int(v int) *int { return &v }

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.StartAt == nil && p.DurationInFrames == nil && p.TrackIndex == nil &&
		p.Content == nil && p.Style == nil
}

// Fields returns the names of the fields the patch sets, in a stable order.
func (p Patch) Fields() []string {
	var fields []string
	if p.StartAt != nil {
		fields = append(fields, "startAt")
	}
	if p.DurationInFrames != nil {
		fields = append(fields, "durationInFrames")
	}
	if p.TrackIndex != nil {
		fields = append(fields, "trackIndex")
	}
	if p.Content != nil {
		fields = append(fields, "content")
	}
	if p.Style != nil {
		fields = append(fields, "style")
	}
	return fields
}

// Map returns the patch as a field map. Style is flattened to its resolved
// position plus any cosmetic fields that are set.
func (p Patch) Map() map[string]any {
	m := make(map[string]any)
	if p.StartAt != nil {
		m["startAt"] = *p.StartAt
	}
	if p.DurationInFrames != nil {
		m["durationInFrames"] = *p.DurationInFrames
	}
	if p.TrackIndex != nil {
		m["trackIndex"] = *p.TrackIndex
	}
	if p.Content != nil {
		m["content"] = *p.Content
	}
	if p.Style != nil {
		r := p.Style.Resolved()
		m["style"] = map[string]any{
			"x":          r.X,
			"y":          r.Y,
			"color":      r.Color,
			"fontSize":   r.FontSize,
			"fontWeight": r.FontWeight,
		}
	}
	return m
}

// Apply returns a copy of c with the patch applied. c is not modified.
func (p Patch) Apply(c Clip) Clip {
	if p.StartAt != nil {
		c.StartAt = *p.StartAt
	}
	if p.DurationInFrames != nil {
		c.DurationInFrames = *p.DurationInFrames
	}
	if p.TrackIndex != nil {
		c.TrackIndex = *p.TrackIndex
	}
	if p.Content != nil {
		c.Content = *p.Content
	}
	if p.Style != nil {
		s := *p.Style
		c.Style = &s
	}
	return c
}

// String formats the patch as {field:value ...}.
func (p Patch) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range p.Fields() {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch f {
		case "startAt":
			fmt.Fprintf(&b, "startAt:%d", *p.StartAt)
		case "durationInFrames":
			fmt.Fprintf(&b, "durationInFrames:%d", *p.DurationInFrames)
		case "trackIndex":
			fmt.Fprintf(&b, "trackIndex:%d", *p.TrackIndex)
		case "content":
			fmt.Fprintf(&b, "content:%q", *p.Content)
		case "style":
			r := p.Style.Resolved()
			fmt.Fprintf(&b, "style:{x:%g y:%g}", r.X, r.Y)
		}
	}
	b.WriteByte('}')
	return b.String()
}
