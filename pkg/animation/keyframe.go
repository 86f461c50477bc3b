package animation

import (
	"math"
	"time"

	"github.com/go-drift/motion/pkg/blend"
	"github.com/go-drift/motion/pkg/style"
)

// keyframeAnimation runs a named keyframe list against its target. Unlike a
// transition it owns every property its keyframes mention and suppresses any
// transition on those properties while it runs.
type keyframeAnimation struct {
	animBase

	name string
	// index is the declaration position in the style; style-available
	// processing walks animations in this order.
	index     int
	keyframes *style.KeyframeList
}

func newKeyframeAnimation(decl *style.Declaration, target Target, index int, comp *composite) *keyframeAnimation {
	k := &keyframeAnimation{name: decl.Name, index: index, keyframes: decl.Keyframes}
	k.init(decl, target, comp, k)
	return k
}

// animate blends the bracketing keyframe pair for the current moment into
// animated. The pair is picked in raw (pre-timing-function) time; the timing
// function then applies inside the pair's window via progress(scale, offset).
func (k *keyframeAnimation) animate(currentStyle, targetStyle *style.Style, animated **style.Style) {
	if k.isNew() && k.decl.PlayState == style.PlayRunning {
		k.updateState(inputStartAnimation, time.Time{}, 0)
	}

	// A just-finished animation must hand back the target style so the
	// final pass lands on the un-animated values.
	if k.postactive() {
		if *animated == nil {
			*animated = targetStyle
		}
		return
	}

	// While the delay timer runs the style stays untouched, except for a
	// zero delay, where the first frame applies right away to avoid a flash
	// of the un-animated style.
	if k.waitingToStart() && k.decl.Delay > 0 {
		return
	}

	var elapsed time.Duration
	if !k.startTime.IsZero() {
		switch {
		case !k.paused:
			elapsed = Now().Sub(k.startTime)
		case !k.pauseTime.IsZero():
			elapsed = k.pauseTime.Sub(k.startTime)
		}
	}
	if elapsed < 0 {
		elapsed = 0
	}

	t := 1.0
	if k.decl.Duration > 0 {
		t = float64(elapsed) / float64(k.decl.Duration)
	}
	iter := math.Floor(t)
	t -= iter
	if k.decl.Direction == style.DirectionAlternate && int(iter)&1 == 1 {
		t = 1 - t
	}

	var from, to *style.Style
	scale, offset := 1.0, 0.0
	if k.keyframes != nil {
		frames := k.keyframes.Frames
		for i := range frames {
			f := &frames[i]
			// The first key is always 0, so a bracketing pair exists unless
			// the list is degenerate. The last frame closes its window
			// inclusively: an alternate iteration boundary flips the fraction
			// to exactly 1, which must land in the final pair, not past it.
			if t < f.Key || i == len(frames)-1 {
				if from == nil {
					break
				}
				scale = 1.0 / (f.Key - offset)
				to = f.Style
				break
			}
			offset = f.Key
			from = f.Style
		}
	}

	if from == nil || to == nil {
		k.updateState(inputEndAnimation, time.Time{}, 0)
		return
	}

	if *animated == nil {
		*animated = targetStyle.Clone()
	}

	prog := k.progress(scale, offset)
	for _, p := range k.keyframes.Properties {
		if blend.Blend(p, *animated, from, to, prog) {
			k.setAnimating(true)
		}
	}
}

func (k *keyframeAnimation) declMatches(decl *style.Declaration) bool {
	return k.decl.Matches(decl)
}

func (k *keyframeAnimation) setDeclaration(decl *style.Declaration) {
	k.decl = decl
	k.keyframes = decl.Keyframes
}

func (k *keyframeAnimation) affectsProperty(p style.Property) bool {
	return k.keyframes != nil && k.keyframes.AffectsProperty(p)
}

func (k *keyframeAnimation) overridden() bool { return false }

func (k *keyframeAnimation) startAnimation(elapsed time.Duration) bool {
	if s, ok := k.target.(Starter); ok {
		return s.StartAnimation(style.PropertyInvalid, k.name, elapsed)
	}
	return false
}

func (k *keyframeAnimation) endAnimation(reset bool) {
	if k.waitedForResponse {
		if s, ok := k.target.(Starter); ok {
			s.EndAnimation(style.PropertyInvalid, k.name)
		}
		k.waitedForResponse = false
	}
	// Restore the un-animated style.
	k.target.MarkStyleDirty()
}

func (k *keyframeAnimation) onStart(elapsed time.Duration) {
	k.sendAnimationEvent(EventAnimationStart, elapsed)
}

func (k *keyframeAnimation) onIteration(elapsed time.Duration) {
	k.sendAnimationEvent(EventAnimationIteration, elapsed)
}

func (k *keyframeAnimation) onEnd(elapsed time.Duration) {
	if !k.sendAnimationEvent(EventAnimationEnd, elapsed) {
		// No event means no dispatch-side finalization, so finalize here.
		k.endAnimation(true)
	}
}

// sendAnimationEvent queues an animation lifecycle event if anything is
// listening. Returns whether an event was queued.
func (k *keyframeAnimation) sendAnimationEvent(t EventType, elapsed time.Duration) bool {
	if !k.target.Document().HasListener(t) {
		return false
	}
	k.requestEvent(t, k.name, style.PropertyInvalid, elapsed)
	return true
}

func (k *keyframeAnimation) overrideSiblings() {
	if k.keyframes == nil {
		return
	}
	for _, p := range k.keyframes.Properties {
		k.comp.overrideTransitions(p, true)
	}
}

func (k *keyframeAnimation) resumeOverriddenSiblings() {
	if k.keyframes == nil {
		return
	}
	for _, p := range k.keyframes.Properties {
		k.comp.overrideTransitions(p, false)
	}
}
