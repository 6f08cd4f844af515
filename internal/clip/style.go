package clip

// Text style defaults applied when a text clip has no style or a partial one.
const (
	DefaultStyleX          = 10.0
	DefaultStyleY          = 80.0
	DefaultStyleColor      = "#ffffff"
	DefaultStyleFontSize   = "32px"
	DefaultStyleFontWeight = "bold"
	DefaultStyleTextShadow = "2px 2px 4px rgba(0,0,0,0.8)"
)

// Style is the on-canvas placement and look of a text clip.
// X and Y are percentages of the canvas size; nil means unset.
type Style struct {
	X          *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y          *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Color      string   `json:"color,omitempty" yaml:"color,omitempty"`
	FontSize   string   `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight string   `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	TextShadow string   `json:"textShadow,omitempty" yaml:"textShadow,omitempty"`
}

// ResolvedStyle is a Style with every field filled.
type ResolvedStyle struct {
	X, Y       float64
	Color      string
	FontSize   string
	FontWeight string
	TextShadow string
}

// Resolved fills unset fields with defaults. A nil receiver yields the
// defaults.
func (s *Style) Resolved() ResolvedStyle {
	r := ResolvedStyle{
		X:          DefaultStyleX,
		Y:          DefaultStyleY,
		Color:      DefaultStyleColor,
		FontSize:   DefaultStyleFontSize,
		FontWeight: DefaultStyleFontWeight,
		TextShadow: DefaultStyleTextShadow,
	}
	if s == nil {
		return r
	}
	if s.X != nil {
		r.X = *s.X
	}
	if s.Y != nil {
		r.Y = *s.Y
	}
	if s.Color != "" {
		r.Color = s.Color
	}
	if s.FontSize != "" {
		r.FontSize = s.FontSize
	}
	if s.FontWeight != "" {
		r.FontWeight = s.FontWeight
	}
	if s.TextShadow != "" {
		r.TextShadow = s.TextShadow
	}
	return r
}

// WithPosition returns a copy of s (or an empty style when s is nil) with
// X and Y replaced. The cosmetic fields are carried over unchanged.
func (s *Style) WithPosition(x, y float64) *Style {
	var out Style
	if s != nil {
		out = *s
	}
	out.X = &x
	out.Y = &y
	return &out
}
