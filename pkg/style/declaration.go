package style

import (
	"fmt"
	"time"
)

// PlayState is the declared animation-play-state.
type PlayState int

const (
	PlayRunning PlayState = iota
	PlayPaused
)

// String returns the CSS keyword for the play state.
func (p PlayState) String() string {
	if p == PlayPaused {
		return "paused"
	}
	return "running"
}

// Direction is the declared animation-direction.
type Direction int

const (
	DirectionNormal Direction = iota
	// DirectionAlternate flips progress on odd iterations.
	DirectionAlternate
)

// String returns the CSS keyword for the direction.
func (d Direction) String() string {
	if d == DirectionAlternate {
		return "alternate"
	}
	return "normal"
}

// TimingKind discriminates timing functions.
type TimingKind int

const (
	TimingLinear TimingKind = iota
	TimingBezier
)

// TimingFunction maps an input fraction to an output fraction. Linear is the
// identity; bezier timing carries the two cubic control points.
type TimingFunction struct {
	Kind TimingKind
	X1   float64
	Y1   float64
	X2   float64
	Y2   float64
}

// Bezier returns a cubic-bezier timing function with the given control points.
func Bezier(x1, y1, x2, y2 float64) TimingFunction {
	return TimingFunction{Kind: TimingBezier, X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Standard CSS timing function keywords.
var (
	Linear    = TimingFunction{Kind: TimingLinear}
	Ease      = Bezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = Bezier(0.42, 0.0, 1.0, 1.0)
	EaseOut   = Bezier(0.0, 0.0, 0.58, 1.0)
	EaseInOut = Bezier(0.42, 0.0, 0.58, 1.0)
)

// ParseTimingFunction resolves a timing function keyword.
func ParseTimingFunction(s string) (TimingFunction, bool) {
	switch s {
	case "", "linear":
		return Linear, true
	case "ease":
		return Ease, true
	case "ease-in":
		return EaseIn, true
	case "ease-out":
		return EaseOut, true
	case "ease-in-out":
		return EaseInOut, true
	}
	return Linear, false
}

// IterationInfinite marks an unbounded iteration count.
const IterationInfinite = -1

// Keyframe is one step of a keyframe animation: the key position in [0, 1]
// and the partial style to apply there.
type Keyframe struct {
	Key   float64
	Style *Style
}

// KeyframeList is an ordered sequence of keyframes with non-decreasing keys
// (the first conventionally 0) plus the set of properties the keyframes
// animate, in declaration order. It is immutable once attached.
type KeyframeList struct {
	Frames     []Keyframe
	Properties []Property
}

// IsEmpty reports whether the list has no frames.
func (k *KeyframeList) IsEmpty() bool { return k == nil || len(k.Frames) == 0 }

// AffectsProperty reports whether the keyframes animate the given property.
func (k *KeyframeList) AffectsProperty(p Property) bool {
	if k == nil {
		return false
	}
	for _, prop := range k.Properties {
		if prop == p {
			return true
		}
	}
	return false
}

// Declaration describes one animation or transition as produced by the style
// cascade. Transitions use Property; keyframe animations use Name and
// Keyframes. Declarations are immutable once attached to a style.
type Declaration struct {
	Duration       time.Duration
	Delay          time.Duration
	IterationCount int // 0 never runs; IterationInfinite is unbounded
	Direction      Direction
	Timing         TimingFunction
	PlayState      PlayState

	// Property is the transition target, possibly PropertyAll.
	Property Property

	// Name and Keyframes identify a keyframe animation.
	Name      string
	Keyframes *KeyframeList
}

// Matches reports whether two declarations describe the same animation,
// ignoring play state (play state changes do not restart an animation).
// Keyframe lists are compared by identity.
func (d *Declaration) Matches(o *Declaration) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.Duration == o.Duration &&
		d.Delay == o.Delay &&
		d.IterationCount == o.IterationCount &&
		d.Direction == o.Direction &&
		d.Timing == o.Timing &&
		d.Property == o.Property &&
		d.Name == o.Name &&
		d.Keyframes == o.Keyframes
}

// ValidAnimation reports whether the declaration can produce a live keyframe
// animation. Degenerate declarations (no duration and no delay, zero
// iterations, missing or empty keyframes) are filtered out before
// instantiation.
func (d *Declaration) ValidAnimation() bool {
	if d.Name == "" || d.Keyframes.IsEmpty() {
		return false
	}
	if d.Duration <= 0 && d.Delay <= 0 {
		return false
	}
	return d.IterationCount != 0
}

// ValidTransition reports whether the declaration can produce a live
// transition. A zero-duration, zero-delay transition is a no-op and is never
// instantiated.
func (d *Declaration) ValidTransition() bool {
	return d.Duration > 0 || d.Delay > 0
}

func (d *Declaration) String() string {
	if d.Name != "" {
		return fmt.Sprintf("animation %q %v", d.Name, d.Duration)
	}
	return fmt.Sprintf("transition %v %v", d.Property, d.Duration)
}
