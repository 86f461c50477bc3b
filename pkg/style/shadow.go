package style

// Shadow describes one box or text shadow. A nil *Shadow means no shadow;
// blending treats the absent side as a fully transparent shadow with zero
// geometry so shadows can fade in and out.
type Shadow struct {
	X     float64
	Y     float64
	Blur  float64
	Color Color
}

// Equal reports whether two optional shadows are indistinguishable.
func (s *Shadow) Equal(o *Shadow) bool {
	if s == nil || o == nil {
		return s == o
	}
	return *s == *o
}

// Visibility is the CSS visibility keyword.
type Visibility int

const (
	VisibilityVisible Visibility = iota
	VisibilityHidden
	VisibilityCollapse
)

// String returns the CSS keyword for the visibility value.
func (v Visibility) String() string {
	switch v {
	case VisibilityVisible:
		return "visible"
	case VisibilityHidden:
		return "hidden"
	case VisibilityCollapse:
		return "collapse"
	default:
		return "visible"
	}
}

// ParseVisibility resolves a visibility keyword.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "visible":
		return VisibilityVisible, true
	case "hidden":
		return VisibilityHidden, true
	case "collapse":
		return VisibilityCollapse, true
	}
	return VisibilityVisible, false
}
