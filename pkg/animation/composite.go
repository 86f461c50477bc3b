package animation

import (
	"sort"
	"time"

	"github.com/go-drift/motion/pkg/blend"
	"github.com/go-drift/motion/pkg/style"
)

// composite holds every animation running on one target: at most one
// transition per property plus the target's named keyframe animations.
type composite struct {
	controller *Controller

	transitions map[style.Property]*transition
	keyframes   map[string]*keyframeAnimation

	suspended             bool
	styleAvailableWaiters int
}

func newComposite(c *Controller) *composite {
	return &composite{
		controller:  c,
		transitions: make(map[style.Property]*transition),
		keyframes:   make(map[string]*keyframeAnimation),
	}
}

// updateTransitions reconciles the active transitions against the incoming
// target style: retargeted properties restart, newly-changed properties spawn
// transitions, everything else is left running.
func (c *composite) updateTransitions(target Target, currentStyle, targetStyle *style.Style) {
	// Without a committed style there is nothing to transition from.
	if currentStyle == nil || !targetStyle.HasTransitions() {
		return
	}

	for _, decl := range targetStyle.Transitions {
		if !decl.ValidTransition() {
			continue
		}

		// "all" expands to every animatable property; transitions are
		// always keyed by a concrete property.
		props := []style.Property{decl.Property}
		if decl.Property == style.PropertyAll {
			props = blend.Properties()
		}

		for _, prop := range props {
			equal := true
			if tr := c.transitions[prop]; tr != nil {
				// A running transition whose destination moved is dropped
				// and replaced below.
				if !tr.isTargetPropertyEqual(targetStyle) {
					tr.detach()
					delete(c.transitions, prop)
					equal = false
				}
			} else {
				equal = blend.Equal(prop, currentStyle, targetStyle)
			}

			if !equal {
				c.transitions[prop] = newTransition(decl, prop, target, c)
			}
		}
	}
}

// updateKeyframeAnimations reconciles the named animations against the
// incoming target style. Any change beyond play state rebuilds the whole set;
// a pure play-state change pauses or resumes in place.
func (c *composite) updateKeyframeAnimations(target Target, currentStyle, targetStyle *style.Style) {
	if len(c.keyframes) == 0 && !targetStyle.HasAnimations() {
		return
	}

	if currentStyle != nil && currentStyle.HasAnimations() && targetStyle.HasAnimations() &&
		declarationsEqual(currentStyle.Animations, targetStyle.Animations) {
		return
	}

	numAnims := 0
	changed := false
	for _, decl := range targetStyle.Animations {
		if !decl.ValidAnimation() {
			changed = true
		} else if k := c.keyframes[decl.Name]; k == nil || !k.declMatches(decl) {
			changed = true
		} else {
			// Same animation; only the play state may differ.
			k.updatePlayState(decl.PlayState == style.PlayRunning)
			k.setDeclaration(decl)
		}
		numAnims++
	}
	if !changed && len(c.keyframes) != numAnims {
		changed = true
	}
	if !changed {
		return
	}

	for _, k := range c.keyframes {
		k.detach()
	}
	c.keyframes = make(map[string]*keyframeAnimation)

	index := 0
	for _, decl := range targetStyle.Animations {
		if !decl.ValidAnimation() {
			continue
		}
		c.keyframes[decl.Name] = newKeyframeAnimation(decl, target, index, c)
		index++
	}
}

// animate runs one pass over every animation on the target and returns the
// blended style, or targetStyle itself when nothing needed blending.
// Transitions go first so keyframe animations win on shared properties.
func (c *composite) animate(target Target, currentStyle, targetStyle *style.Style) *style.Style {
	var animated *style.Style

	c.updateTransitions(target, currentStyle, targetStyle)

	if currentStyle != nil {
		for _, tr := range c.transitions {
			tr.animate(currentStyle, targetStyle, &animated)
		}
	}

	c.updateKeyframeAnimations(target, currentStyle, targetStyle)

	if targetStyle.HasAnimations() {
		for _, decl := range targetStyle.Animations {
			if !decl.ValidAnimation() {
				continue
			}
			if k := c.keyframes[decl.Name]; k != nil {
				k.animate(currentStyle, targetStyle, &animated)
			}
		}
	}

	c.cleanupFinished()

	if animated != nil {
		return animated
	}
	return targetStyle
}

// animating reports whether anything here still needs the shared timer.
func (c *composite) animating() bool {
	for _, tr := range c.transitions {
		if tr.animating && tr.runningState() {
			return true
		}
	}
	for _, k := range c.keyframes {
		if !k.paused && k.animating && k.active() {
			return true
		}
	}
	return false
}

func (c *composite) setAnimating(b bool) {
	for _, tr := range c.transitions {
		tr.setAnimating(b)
	}
	for _, k := range c.keyframes {
		k.setAnimating(b)
	}
}

// cleanupFinished removes animations that are done and whose end events (if
// any) already fired. Suspended composites keep everything so resume can
// restore the full set.
func (c *composite) cleanupFinished() {
	if c.suspended {
		return
	}
	for prop, tr := range c.transitions {
		if tr.postactive() && !tr.waitingForEndEvent {
			tr.detach()
			delete(c.transitions, prop)
		}
	}
	for name, k := range c.keyframes {
		if k.postactive() && !k.waitingForEndEvent {
			k.detach()
			delete(c.keyframes, name)
		}
	}
}

// detachAll force-ends and releases every animation. Used on cancel.
func (c *composite) detachAll() {
	for _, tr := range c.transitions {
		tr.detach()
	}
	for _, k := range c.keyframes {
		k.detach()
	}
	c.transitions = make(map[style.Property]*transition)
	c.keyframes = make(map[string]*keyframeAnimation)
}

func (c *composite) suspend() {
	if c.suspended {
		return
	}
	c.suspended = true
	for _, k := range c.keyframes {
		k.updatePlayState(false)
	}
	for _, tr := range c.transitions {
		if tr.hasStyles() {
			tr.updatePlayState(false)
		}
	}
}

func (c *composite) resume() {
	if !c.suspended {
		return
	}
	c.suspended = false
	for _, k := range c.keyframes {
		if k.playStateRunning() {
			k.updatePlayState(true)
		}
	}
	for _, tr := range c.transitions {
		if tr.hasStyles() {
			tr.updatePlayState(true)
		}
	}
}

// overrideTransitions flips suppression on any transition for the property a
// keyframe animation claims or releases.
func (c *composite) overrideTransitions(prop style.Property, override bool) {
	for _, tr := range c.transitions {
		if tr.property == prop {
			tr.setOverridden(override)
		}
	}
}

func (c *composite) setWaitingForStyleAvailable(waiting bool) {
	if waiting {
		c.styleAvailableWaiters++
	} else if c.styleAvailableWaiters > 0 {
		c.styleAvailableWaiters--
	}
	c.controller.setWaitingForStyleAvailable(waiting)
}

// styleAvailable releases every animation blocked on a style recompute.
// Keyframe animations go in declaration order so transition overrides stack
// deterministically.
func (c *composite) styleAvailable() {
	if c.styleAvailableWaiters == 0 {
		return
	}

	anims := make([]*keyframeAnimation, 0, len(c.keyframes))
	for _, k := range c.keyframes {
		anims = append(anims, k)
	}
	sort.SliceStable(anims, func(i, j int) bool { return anims[i].index < anims[j].index })

	for _, k := range anims {
		if k.waitingForStyleAvailable() {
			k.updateState(inputStyleAvailable, time.Time{}, 0)
		}
	}
	for _, tr := range c.transitions {
		if tr.waitingForStyleAvailable() {
			tr.updateState(inputStyleAvailable, time.Time{}, 0)
		}
	}
}

// setAnimationStartTime confirms the start time for every keyframe animation
// waiting on one.
func (c *composite) setAnimationStartTime(tm time.Time) {
	for _, k := range c.keyframes {
		if k.waitingForStartTime() {
			k.updateState(inputStartTimeSet, tm, 0)
		}
	}
}

// setTransitionStartTime confirms the start time for the property's
// transition, if it is waiting on one.
func (c *composite) setTransitionStartTime(prop style.Property, tm time.Time) {
	for _, tr := range c.transitions {
		if tr.property == prop && tr.waitingForStartTime() {
			tr.updateState(inputStartTimeSet, tm, 0)
		}
	}
}

func (c *composite) isAnimatingProperty(prop style.Property, isRunningNow bool) bool {
	for _, k := range c.keyframes {
		if k.isAnimatingProperty(prop, isRunningNow) {
			return true
		}
	}
	for _, tr := range c.transitions {
		if tr.isAnimatingProperty(prop, isRunningNow) {
			return true
		}
	}
	return false
}

// declarationsEqual reports whether two animation declaration lists are the
// same, play state included. Identical slices (the common case after a style
// clone) short-circuit on identity.
func declarationsEqual(a, b []*style.Declaration) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		if !a[i].Matches(b[i]) || a[i].PlayState != b[i].PlayState {
			return false
		}
	}
	return true
}
