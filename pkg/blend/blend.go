// Package blend holds the per-property interpolation strategies the
// animation engine uses to mix two resolved styles.
//
// Each animatable property is covered by a Wrapper that knows how to compare
// the property across two styles and how to write an interpolated value into
// a destination style. Wrappers live in a process-wide registry built once on
// first use; the registry's enumeration order is its registration order, which
// is what a transition on "all" expands through.
package blend

import (
	"sync"

	"github.com/go-drift/motion/pkg/style"
)

// Wrapper compares and interpolates one property across styles.
type Wrapper interface {
	// Property returns the property this wrapper handles.
	Property() style.Property
	// Equal reports whether the property's effective values are
	// indistinguishable between the two styles.
	Equal(a, b *style.Style) bool
	// Blend writes the value interpolated between a and b at position t
	// into dst.
	Blend(dst, a, b *style.Style, t float64)
}

var registry struct {
	once     sync.Once
	wrappers []Wrapper
	index    map[style.Property]Wrapper
}

func ensureRegistry() {
	registry.once.Do(func() {
		registry.wrappers = buildWrappers()
		registry.index = make(map[style.Property]Wrapper, len(registry.wrappers))
		for _, w := range registry.wrappers {
			registry.index[w.Property()] = w
		}
	})
}

// Lookup returns the wrapper for a property, or nil if the property is not
// animatable.
func Lookup(p style.Property) Wrapper {
	ensureRegistry()
	return registry.index[p]
}

// Properties enumerates every animatable property in registration order.
func Properties() []style.Property {
	ensureRegistry()
	props := make([]style.Property, len(registry.wrappers))
	for i, w := range registry.wrappers {
		props[i] = w.Property()
	}
	return props
}

// Equal reports whether a property's effective values match between two
// styles. PropertyAll checks every registered property. Unknown properties
// compare equal so they never trigger an animation.
func Equal(p style.Property, a, b *style.Style) bool {
	ensureRegistry()
	if p == style.PropertyAll {
		for _, w := range registry.wrappers {
			if !w.Equal(a, b) {
				return false
			}
		}
		return true
	}
	if w := registry.index[p]; w != nil {
		return w.Equal(a, b)
	}
	return true
}

// Blend interpolates one property from a to b at position t into dst. It
// reports whether the property is animatable, which callers treat as "this
// blend requires continued timer ticks". PropertyAll is not a valid blend
// target.
func Blend(p style.Property, dst, a, b *style.Style, t float64) bool {
	ensureRegistry()
	w := registry.index[p]
	if w == nil {
		return false
	}
	w.Blend(dst, a, b, t)
	return true
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpByte(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func blendColor(from, to style.Color, t float64) style.Color {
	return style.RGBA8(
		lerpByte(from.Red(), to.Red(), t),
		lerpByte(from.Green(), to.Green(), t),
		lerpByte(from.Blue(), to.Blue(), t),
		lerpByte(from.Alpha(), to.Alpha(), t),
	)
}

// blendVisibility treats visibility as a pseudo-numeric domain where visible
// is 1 and any hidden variant is 0. Any positive mix is visible; otherwise
// the result is whichever endpoint is hidden, preferring the target's hidden
// variant.
func blendVisibility(from, to style.Visibility, t float64) style.Visibility {
	fromVal, toVal := 0.0, 0.0
	if from == style.VisibilityVisible {
		fromVal = 1
	}
	if to == style.VisibilityVisible {
		toVal = 1
	}
	if fromVal == toVal {
		return to
	}
	if lerp(fromVal, toVal, t) > 0 {
		return style.VisibilityVisible
	}
	if to != style.VisibilityVisible {
		return to
	}
	return from
}

// transparentShadow stands in for an absent shadow so shadows can fade in
// and out.
var transparentShadow = style.Shadow{Color: style.ColorTransparent}

func blendShadow(from, to *style.Shadow, t float64) *style.Shadow {
	if from == nil {
		from = &transparentShadow
	}
	if to == nil {
		to = &transparentShadow
	}
	return &style.Shadow{
		X:     lerp(from.X, to.X, t),
		Y:     lerp(from.Y, to.Y, t),
		Blur:  lerp(from.Blur, to.Blur, t),
		Color: blendColor(from.Color, to.Color, t),
	}
}
