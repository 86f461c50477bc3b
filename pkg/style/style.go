// Package style models resolved render styles and their attached animation
// and transition declarations.
//
// A Style is the engine's view of one element's computed style: the
// animatable property values plus the transition and animation declarations
// the cascade attached to it. Styles are produced by the host's style
// resolver; the animation engine only clones them to build blended outputs
// and never mutates a style it was handed.
package style

// Style is one resolved style. The zero value is not useful; construct with
// New so defaults (opacity 1, visible, auto z-index) are in place.
type Style struct {
	Left   Length
	Top    Length
	Right  Length
	Bottom Length
	Width  Length
	Height Length

	Opacity float64

	// Color is the foreground color. It doubles as the fallback for unset
	// border and outline colors.
	Color           Color
	BackgroundColor Color
	BorderColor     MaybeColor
	OutlineColor    MaybeColor

	FontSize      float64
	LetterSpacing float64
	WordSpacing   float64

	ZIndex        int
	HasAutoZIndex bool

	BorderTopLeftRadius  Size
	BorderTopRightRadius Size

	Visibility Visibility
	Transform  Transform
	BoxShadow  *Shadow
	TextShadow *Shadow

	// Declarations attached by the cascade. These are immutable once
	// attached; animations hold non-owning references into them.
	Transitions []*Declaration
	Animations  []*Declaration
}

// New returns a style with CSS initial values.
func New() *Style {
	return &Style{
		Opacity:       1,
		Color:         ColorBlack,
		HasAutoZIndex: true,
	}
}

// Clone returns a deep copy of the style. Declaration slices are shared:
// declarations are immutable and compared by identity.
func (s *Style) Clone() *Style {
	c := *s
	if s.Transform != nil {
		c.Transform = make(Transform, len(s.Transform))
		copy(c.Transform, s.Transform)
	}
	if s.BoxShadow != nil {
		sh := *s.BoxShadow
		c.BoxShadow = &sh
	}
	if s.TextShadow != nil {
		sh := *s.TextShadow
		c.TextShadow = &sh
	}
	return &c
}

// HasTransitions reports whether any transition declarations are attached.
func (s *Style) HasTransitions() bool { return len(s.Transitions) > 0 }

// HasAnimations reports whether any animation declarations are attached.
func (s *Style) HasAnimations() bool { return len(s.Animations) > 0 }
