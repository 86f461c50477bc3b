package animation

import (
	"time"

	"github.com/go-drift/motion/pkg/blend"
	"github.com/go-drift/motion/pkg/style"
)

// transition animates a single property between two committed styles. It is
// created implicitly when a style change touches a property named by a
// transition declaration.
type transition struct {
	animBase

	property       style.Property
	overriddenFlag bool

	// fromStyle and toStyle snapshot the styles the transition runs between.
	// They are captured on the first animate pass and replaced wholesale
	// when the target value changes again.
	fromStyle *style.Style
	toStyle   *style.Style
}

func newTransition(decl *style.Declaration, prop style.Property, target Target, comp *composite) *transition {
	t := &transition{property: prop}
	t.init(decl, target, comp, t)
	return t
}

// animate blends the transition's property into animated, cloning targetStyle
// into *animated first if no earlier animation has. Returns the style to keep
// passing down the chain.
func (t *transition) animate(currentStyle, targetStyle *style.Style, animated **style.Style) {
	if t.paused {
		return
	}

	// A finished transition surviving only for its end event contributes
	// nothing; the target style already holds the final value.
	if t.postactive() {
		return
	}

	if t.isNew() {
		t.reset(currentStyle, targetStyle)
	}

	if *animated == nil {
		*animated = targetStyle.Clone()
	}

	if blend.Blend(t.property, *animated, t.fromStyle, t.toStyle, t.progress(1, 0)) {
		t.setAnimating(true)
	}
}

// reset points the transition at a new style pair and restarts it. Passing
// nils drops the snapshots without starting anything.
func (t *transition) reset(from, to *style.Style) {
	t.fromStyle = from
	t.toStyle = to
	if from != nil && to != nil {
		t.updateState(inputRestartAnimation, time.Time{}, 0)
	}
}

// hasStyles reports whether the transition captured its style pair yet; only
// started transitions respond to suspend and resume.
func (t *transition) hasStyles() bool {
	return t.fromStyle != nil && t.toStyle != nil
}

// isTargetPropertyEqual reports whether the transition is still heading
// where targetStyle wants it to.
func (t *transition) isTargetPropertyEqual(targetStyle *style.Style) bool {
	return blend.Equal(t.property, t.toStyle, targetStyle)
}

// setOverridden flips suppression by a keyframe animation that owns the same
// property.
func (t *transition) setOverridden(b bool) {
	if b == t.overriddenFlag {
		return
	}
	t.overriddenFlag = b
	if b {
		t.updateState(inputPauseOverride, time.Time{}, 0)
	} else {
		t.updateState(inputResumeOverride, time.Time{}, 0)
	}
}

func (t *transition) affectsProperty(p style.Property) bool { return p == t.property }

func (t *transition) overridden() bool { return t.overriddenFlag }

func (t *transition) startAnimation(elapsed time.Duration) bool {
	if t.overriddenFlag {
		return false
	}
	if s, ok := t.target.(Starter); ok {
		return s.StartAnimation(t.property, "", elapsed)
	}
	return false
}

func (t *transition) endAnimation(reset bool) {
	if !t.waitedForResponse {
		return
	}
	if s, ok := t.target.(Starter); ok {
		s.EndAnimation(t.property, "")
	}
	t.waitedForResponse = false
}

func (t *transition) onStart(time.Duration)     {}
func (t *transition) onIteration(time.Duration) {}

func (t *transition) onEnd(elapsed time.Duration) {
	if !t.sendTransitionEvent(elapsed) {
		// No event means no dispatch-side finalization, so finalize here.
		t.endAnimation(true)
	}
}

// sendTransitionEvent queues a transitionend event if anything is listening.
// Returns whether an event was queued.
func (t *transition) sendTransitionEvent(elapsed time.Duration) bool {
	if !t.target.Document().HasListener(EventTransitionEnd) {
		return false
	}
	t.requestEvent(EventTransitionEnd, "", t.property, elapsed)
	return true
}

// Transitions never claim other animations.
func (t *transition) overrideSiblings()         {}
func (t *transition) resumeOverriddenSiblings() {}
