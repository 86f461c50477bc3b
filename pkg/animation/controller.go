package animation

import (
	"time"

	"github.com/go-drift/motion/pkg/style"
)

// tickInterval is the shared animation timer period while anything animates.
const tickInterval = 25 * time.Millisecond

// Controller owns every animation in a host. The host calls UpdateAnimations
// from its style resolution pass, StyleAvailable once the pass finishes, and
// pumps Step from its event loop; everything else is driven by timers behind
// Step.
type Controller struct {
	sched      *scheduler
	composites map[Target]*composite

	// animationTimer ticks while any animation needs per-frame blending;
	// styleUpdateTimer coalesces style-update requests into one pass per
	// document on the next Step.
	animationTimer   *timer
	styleUpdateTimer *timer
	pendingDocs      []Document

	styleAvailableWaiters int
}

func NewController() *Controller {
	c := &Controller{composites: make(map[Target]*composite)}
	c.sched = newScheduler()
	c.styleUpdateTimer = c.sched.newTimer(c.styleUpdateFired)
	c.animationTimer = c.sched.newTimer(c.animationTimerFired)
	return c
}

// Step fires every due timer. The host calls this from its event loop; no
// engine work happens outside of it and the host's own style pass.
func (c *Controller) Step() {
	c.sched.step()
}

// Pending reports whether any timer is armed, so an idle host can skip
// pumping entirely.
func (c *Controller) Pending() bool {
	return c.sched.hasPending()
}

// UpdateAnimations folds the target's running animations into targetStyle and
// returns the style to commit. Called by the host for every target whose
// style was just recomputed, before the new style is committed, so the
// engine can compare the outgoing committed style against the incoming one.
func (c *Controller) UpdateAnimations(target Target, targetStyle *style.Style) *style.Style {
	currentStyle := target.Style()

	// Fast path: nothing declared now or before means nothing to do.
	if (currentStyle == nil || (!currentStyle.HasAnimations() && !currentStyle.HasTransitions())) &&
		!targetStyle.HasAnimations() && !targetStyle.HasTransitions() {
		return targetStyle
	}

	comp := c.access(target)
	blended := comp.animate(target, currentStyle, targetStyle)

	c.updateAnimationTimer()

	if blended != targetStyle {
		// Animating opacity or transform imposes stacking on the target;
		// the host's own style adjustment only saw the un-animated values.
		if blended.HasAutoZIndex && (blended.Opacity < 1 || len(blended.Transform) > 0) {
			blended.ZIndex = 0
			blended.HasAutoZIndex = false
		}
	}
	return blended
}

// CancelAnimations drops every animation on the target, for use when the
// target leaves the tree. The target gets one more style recompute to land
// back on its un-animated style, unless it was suspended.
func (c *Controller) CancelAnimations(target Target) {
	if len(c.composites) == 0 {
		return
	}
	comp := c.composites[target]
	if comp == nil {
		return
	}
	delete(c.composites, target)
	wasSuspended := comp.suspended
	comp.detachAll()
	if !wasSuspended {
		target.MarkStyleDirty()
	}
}

// StyleAvailable tells the engine a style recomputation pass just finished.
// Every animation blocked on one moves forward. Cheap when nothing waits.
func (c *Controller) StyleAvailable() {
	if c.styleAvailableWaiters == 0 {
		return
	}
	for _, comp := range c.composites {
		comp.styleAvailable()
	}
}

// SetAnimationStartTime delivers the host's start-time confirmation to every
// keyframe animation on the target that is waiting for one.
func (c *Controller) SetAnimationStartTime(target Target, tm time.Time) {
	c.access(target).setAnimationStartTime(tm)
}

// SetTransitionStartTime delivers the host's start-time confirmation to the
// target's transition on the given property.
func (c *Controller) SetTransitionStartTime(target Target, prop style.Property, tm time.Time) {
	c.access(target).setTransitionStartTime(prop, tm)
}

// IsAnimatingProperty reports whether an animation or transition on the
// target covers the property. With isRunningNow only animations past their
// delay count; otherwise anything not yet finished does.
func (c *Controller) IsAnimatingProperty(target Target, prop style.Property, isRunningNow bool) bool {
	comp := c.composites[target]
	if comp == nil {
		return false
	}
	return comp.isAnimatingProperty(prop, isRunningNow)
}

// SuspendAnimations pauses every animation in the document. New animations
// created while suspended stay paused too.
func (c *Controller) SuspendAnimations(doc Document) {
	for target, comp := range c.composites {
		if target.Document() == doc {
			comp.suspend()
		}
	}
	c.updateAnimationTimer()
}

// ResumeAnimations resumes every animation in the document that was not
// individually paused by its declaration.
func (c *Controller) ResumeAnimations(doc Document) {
	for target, comp := range c.composites {
		if target.Document() == doc {
			comp.resume()
		}
	}
	c.updateAnimationTimer()
}

func (c *Controller) access(target Target) *composite {
	comp := c.composites[target]
	if comp == nil {
		comp = newComposite(c)
		c.composites[target] = comp
	}
	return comp
}

func (c *Controller) setWaitingForStyleAvailable(waiting bool) {
	if waiting {
		c.styleAvailableWaiters++
	} else if c.styleAvailableWaiters > 0 {
		c.styleAvailableWaiters--
	}
}

// scheduleStyleUpdate queues one coalesced UpdateStyles pass for the document
// on the next Step.
func (c *Controller) scheduleStyleUpdate(doc Document) {
	for _, d := range c.pendingDocs {
		if d == doc {
			doc = nil
			break
		}
	}
	if doc != nil {
		c.pendingDocs = append(c.pendingDocs, doc)
	}
	if !c.styleUpdateTimer.isActive() {
		c.styleUpdateTimer.startOneShot(0)
	}
}

func (c *Controller) styleUpdateFired() {
	docs := c.pendingDocs
	c.pendingDocs = nil
	for _, doc := range docs {
		doc.UpdateStyles()
	}
}

// updateAnimationTimer starts or stops the shared tick depending on whether
// any composite still needs per-frame blending.
func (c *Controller) updateAnimationTimer() {
	animating := false
	for _, comp := range c.composites {
		if !comp.suspended && comp.animating() {
			animating = true
			break
		}
	}
	if animating {
		if !c.animationTimer.isActive() {
			c.animationTimer.startRepeating(tickInterval)
		}
	} else if c.animationTimer.isActive() {
		c.animationTimer.stop()
	}
}

// animationTimerFired marks every animating target dirty and runs one style
// pass per affected document. The pass calls back into UpdateAnimations,
// which refreshes the animating flags the timer decision rests on.
func (c *Controller) animationTimerFired() {
	var docs []Document
	for target, comp := range c.composites {
		if comp.suspended || !comp.animating() {
			continue
		}
		comp.setAnimating(false)
		target.MarkStyleDirty()
		doc := target.Document()
		seen := false
		for _, d := range docs {
			if d == doc {
				seen = true
				break
			}
		}
		if !seen {
			docs = append(docs, doc)
		}
	}

	for _, doc := range docs {
		doc.UpdateStyles()
	}

	c.updateAnimationTimer()
}
