package animation

import (
	"fmt"
	"math"
	"time"

	"github.com/go-drift/motion/pkg/style"
)

// state is the lifecycle state of one animation or transition.
//
// An animation starts in stateNew. A start request arms the delay timer;
// when it fires the animation asks for a style recompute and waits for the
// style-available broadcast, then for a start-time confirmation (which is
// synthesized in the same turn unless the host claims the animation). With a
// start time in hand it loops through iterations until the end timer fires.
// The paused states shadow whichever phase the pause interrupted.
type state int

const (
	stateNew state = iota // created, not running yet
	stateStartWaitTimer
	stateStartWaitStyleAvailable
	stateStartWaitResponse
	stateLooping
	stateEnding
	statePausedWaitTimer
	statePausedWaitResponse
	statePausedRun
	stateDone // terminal
)

// String returns a human-readable representation of the state.
func (s state) String() string {
	switch s {
	case stateNew:
		return "new"
	case stateStartWaitTimer:
		return "start-wait-timer"
	case stateStartWaitStyleAvailable:
		return "start-wait-style-available"
	case stateStartWaitResponse:
		return "start-wait-response"
	case stateLooping:
		return "looping"
	case stateEnding:
		return "ending"
	case statePausedWaitTimer:
		return "paused-wait-timer"
	case statePausedWaitResponse:
		return "paused-wait-response"
	case statePausedRun:
		return "paused-run"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// input is one event fed into the state machine.
type input int

const (
	inputMakeNew          input = iota // reset back to new from any state
	inputStartAnimation                // start requested
	inputRestartAnimation              // force a restart from any state
	inputStartTimerFired
	inputStyleAvailable
	inputStartTimeSet
	inputLoopTimerFired
	inputEndTimerFired
	inputPauseOverride  // a keyframe animation claimed this property
	inputResumeOverride // the claiming animation went away
	inputPlayStateRunning
	inputPlayStatePaused
	inputEndAnimation // force an end from any state
)

// effect is the behavior a concrete animation kind plugs into the shared
// state machine. transition and keyframeAnimation are the two
// implementations.
type effect interface {
	affectsProperty(style.Property) bool
	// overridden is true only for transitions suppressed by a keyframe
	// animation; an overridden animation never receives an asynchronous
	// start confirmation, so the machine force-sets the start time.
	overridden() bool
	// startAnimation asks the host to run the animation out-of-band.
	// Returning true means a start-time confirmation will arrive later.
	startAnimation(elapsed time.Duration) bool
	endAnimation(reset bool)
	onStart(elapsed time.Duration)
	onIteration(elapsed time.Duration)
	onEnd(elapsed time.Duration)
	overrideSiblings()
	resumeOverriddenSiblings()
}

// animBase is the lifecycle and timing engine shared by transitions and
// keyframe animations. The concrete kind registers itself as self.
type animBase struct {
	state state

	// animating means the blend produced by the last pass requires the
	// shared timer to keep firing.
	animating          bool
	waitedForResponse  bool
	waitingForEndEvent bool

	paused    bool
	startTime time.Time // zero = not yet confirmed
	pauseTime time.Time // zero while paused = no elapsed time to restore

	target Target
	decl   *style.Declaration
	comp   *composite
	self   effect

	tickTimer      *timer // start/loop/end firing
	eventTimer     *timer // asynchronous event delivery
	pendingInput   input
	pendingElapsed time.Duration
	pendingEvents  []Event
}

func (a *animBase) init(decl *style.Declaration, target Target, comp *composite, self effect) {
	a.state = stateNew
	a.decl = decl
	a.target = target
	a.comp = comp
	a.self = self
	sched := comp.controller.sched
	a.tickTimer = sched.newTimer(a.tickTimerFired)
	a.eventTimer = sched.newTimer(a.eventTimerFired)
}

// detach finalizes the animation (running subclass cleanup) and releases its
// timers. The animation must not be used afterwards.
func (a *animBase) detach() {
	if !a.postactive() {
		a.updateState(inputEndAnimation, time.Time{}, 0)
	}
	sched := a.comp.controller.sched
	sched.release(a.tickTimer)
	sched.release(a.eventTimer)
}

func (a *animBase) cancelTimers() {
	a.tickTimer.stop()
	a.eventTimer.stop()
}

// updateState runs one state machine step. tm carries the confirmed start
// time for inputStartTimeSet; elapsed carries the elapsed time reported by a
// fired timer. Either may be zero when the input has no use for it.
func (a *animBase) updateState(in input, tm time.Time, elapsed time.Duration) {
	switch in {
	case inputMakeNew:
		if a.state == stateStartWaitStyleAvailable {
			a.comp.setWaitingForStyleAvailable(false)
		}
		a.state = stateNew
		a.startTime = time.Time{}
		a.paused, a.pauseTime = false, time.Time{}
		a.waitedForResponse = false
		a.self.endAnimation(false)
		return

	case inputRestartAnimation:
		a.cancelTimers()
		if a.state == stateStartWaitStyleAvailable {
			a.comp.setWaitingForStyleAvailable(false)
		}
		wasPaused := a.paused
		a.state = stateNew
		a.startTime = time.Time{}
		a.paused, a.pauseTime = false, time.Time{}
		a.self.endAnimation(false)
		if !wasPaused {
			a.updateState(inputStartAnimation, time.Time{}, 0)
		}
		return

	case inputEndAnimation:
		a.cancelTimers()
		if a.state == stateStartWaitStyleAvailable {
			a.comp.setWaitingForStyleAvailable(false)
		}
		a.state = stateDone
		a.self.endAnimation(true)
		return

	case inputPauseOverride:
		if a.state == stateStartWaitResponse {
			// The animation will be canceled before any confirmation
			// arrives; synthesize the start time so bookkeeping stays
			// consistent even though the visual effect is suppressed.
			a.self.endAnimation(false)
			a.updateState(inputStartTimeSet, Now(), 0)
		}
		return

	case inputResumeOverride:
		if a.state == stateLooping || a.state == stateEnding {
			a.self.startAnimation(a.sinceStart())
		}
		return
	}

	switch a.state {
	case stateNew:
		if in == inputStartAnimation || in == inputPlayStateRunning {
			// Arm the start timer with the declared delay (0 if none).
			a.waitedForResponse = false
			a.state = stateStartWaitTimer
			a.startTick(a.decl.Delay, inputStartTimerFired, a.decl.Delay)
		}

	case stateStartWaitTimer:
		switch in {
		case inputStartTimerFired:
			// Ask for a style recompute so the values we blend between
			// exist, then wait for the style-available broadcast.
			a.state = stateStartWaitStyleAvailable
			a.comp.setWaitingForStyleAvailable(true)
			a.target.MarkStyleDirty()
			a.comp.controller.scheduleStyleUpdate(a.target.Document())
		case inputPlayStatePaused:
			a.paused, a.pauseTime = true, Now()
			a.cancelTimers()
			a.state = statePausedWaitTimer
		}

	case stateStartWaitStyleAvailable:
		a.comp.setWaitingForStyleAvailable(false)
		switch in {
		case inputStyleAvailable:
			a.state = stateStartWaitResponse
			a.self.overrideSiblings()

			// The start event always reports elapsed time 0.
			a.self.onStart(0)

			if a.self.overridden() || !a.self.startAnimation(0) {
				// No confirmation is coming; assume the start happened now.
				a.updateState(inputStartTimeSet, Now(), 0)
			} else {
				a.waitedForResponse = true
			}
		case inputPlayStatePaused:
			// The style pass already ran, so treat this like a pause while
			// waiting for the start response, minus the endAnimation call.
			a.paused, a.pauseTime = true, time.Time{}
			a.state = statePausedWaitResponse
		}

	case stateStartWaitResponse:
		switch in {
		case inputStartTimeSet:
			// Idempotent against duplicate confirmations.
			if a.startTime.IsZero() {
				a.startTime = tm
			}
			a.primeEventTimers()
			a.target.MarkStyleDirty()
			a.comp.controller.scheduleStyleUpdate(a.target.Document())
		case inputPlayStatePaused:
			// When we unpause we will act as though the start timer just
			// fired; there is no start time yet to preserve.
			a.paused, a.pauseTime = true, time.Time{}
			a.self.endAnimation(false)
			a.state = statePausedWaitResponse
		}

	case stateLooping:
		switch in {
		case inputLoopTimerFired:
			a.self.onIteration(elapsed)
			a.primeEventTimers()
		case inputPlayStatePaused:
			a.paused, a.pauseTime = true, Now()
			a.cancelTimers()
			a.self.endAnimation(false)
			a.state = statePausedRun
		}

	case stateEnding:
		switch in {
		case inputEndTimerFired:
			a.self.onEnd(elapsed)
			a.self.resumeOverriddenSiblings()

			// One more style pass to land on the final value. The end hook
			// may have dispatched an event that destroys the target, so
			// nothing below may touch the animation again.
			a.state = stateDone
			a.target.MarkStyleDirty()
			a.comp.controller.scheduleStyleUpdate(a.target.Document())
		case inputPlayStatePaused:
			a.paused, a.pauseTime = true, Now()
			a.cancelTimers()
			a.self.endAnimation(false)
			a.state = statePausedRun
		}

	case statePausedWaitTimer:
		if in != inputPlayStateRunning {
			return
		}
		// The whole delay sequence restarts; no start time exists yet.
		a.paused, a.pauseTime = false, time.Time{}
		a.startTime = time.Time{}
		a.state = stateNew
		a.updateState(inputStartAnimation, time.Time{}, 0)

	case statePausedWaitResponse, statePausedRun:
		if in != inputPlayStateRunning {
			return
		}
		// A paused run resumes from its recorded start time shifted by the
		// paused duration; a paused response wait starts its clock fresh
		// once the (re-requested) confirmation arrives.
		if a.state == statePausedRun && !a.pauseTime.IsZero() {
			a.startTime = a.startTime.Add(Now().Sub(a.pauseTime))
		} else {
			a.startTime = time.Time{}
		}
		a.paused, a.pauseTime = false, time.Time{}
		a.state = stateStartWaitResponse

		if a.self.overridden() || !a.self.startAnimation(a.sinceStart()) {
			a.updateState(inputStartTimeSet, Now(), 0)
		} else {
			a.waitedForResponse = true
		}

	case stateDone:
		// Terminal; stay here until removed.
	}
}

// primeEventTimers decides whether the next boundary is an iteration or the
// end of the animation and arms the matching timer. A zero remaining delay is
// armed anyway: a late or zero-duration animation still walks its event
// sequence through the timer, which keeps re-entrant teardown out of the
// current call frame.
func (a *animBase) primeEventTimers() {
	elapsed := Now().Sub(a.startTime)
	if elapsed < 0 {
		elapsed = 0
	}

	total := time.Duration(-1) // unbounded
	if a.decl.IterationCount > 0 {
		total = a.decl.Duration * time.Duration(a.decl.IterationCount)
	}

	durationLeft := time.Duration(0)
	nextBoundary := total
	if a.decl.Duration > 0 && (total < 0 || elapsed < total) {
		durationLeft = a.decl.Duration - elapsed%a.decl.Duration
		nextBoundary = elapsed + durationLeft
	}

	if total < 0 || nextBoundary < total {
		a.state = stateLooping
		a.startTick(durationLeft, inputLoopTimerFired, nextBoundary)
	} else {
		a.state = stateEnding
		a.startTick(durationLeft, inputEndTimerFired, nextBoundary)
	}
}

// progress returns the timing-function output for the current elapsed time.
// scale and offset remap the global fraction into a keyframe pair's local
// window before the timing function applies.
func (a *animBase) progress(scale, offset float64) float64 {
	if a.preactive() {
		return 0
	}

	var elapsed time.Duration
	switch {
	case a.paused:
		if !a.pauseTime.IsZero() && !a.startTime.IsZero() {
			elapsed = a.pauseTime.Sub(a.startTime)
		}
	case !a.startTime.IsZero():
		elapsed = Now().Sub(a.startTime)
	}
	if elapsed < 0 {
		elapsed = 0
	}

	dur := a.decl.Duration
	total := time.Duration(-1)
	if a.decl.IterationCount > 0 {
		total = dur * time.Duration(a.decl.IterationCount)
	}
	if a.postactive() || dur == 0 || (total >= 0 && elapsed >= total) {
		return 1
	}

	// No need to handle being past the last iteration here; that was short
	// circuited above.
	fractional := float64(elapsed) / float64(dur)
	integral := math.Floor(fractional)
	fractional -= integral
	if a.decl.Direction == style.DirectionAlternate && int(integral)&1 == 1 {
		fractional = 1 - fractional
	}

	if scale != 1 || offset != 0 {
		fractional = (fractional - offset) * scale
	}

	tf := a.decl.Timing
	if tf.Kind == style.TimingLinear {
		return fractional
	}
	return solveBezier(tf.X1, tf.Y1, tf.X2, tf.Y2, fractional, solveEpsilon(dur))
}

func (a *animBase) startTick(d time.Duration, in input, elapsed time.Duration) {
	a.pendingInput = in
	a.pendingElapsed = elapsed
	a.tickTimer.startOneShot(d)
}

func (a *animBase) tickTimerFired() {
	a.updateState(a.pendingInput, time.Time{}, a.pendingElapsed)
	// The animation may be gone here when an end timer tore it down.
}

// requestEvent queues an event for asynchronous delivery. Delivery through a
// timer keeps event handlers (which may destroy the target or the animation)
// out of the state machine's call frame. Events queue rather than overwrite:
// a zero-length animation fires its start and end hooks within one tick and
// both events must reach the host, in order.
func (a *animBase) requestEvent(t EventType, name string, prop style.Property, elapsed time.Duration) {
	a.pendingEvents = append(a.pendingEvents,
		Event{Target: a.target, Type: t, Name: name, Property: prop, Elapsed: elapsed})
	a.waitingForEndEvent = true
	a.eventTimer.startOneShot(0)
}

func (a *animBase) eventTimerFired() {
	a.waitingForEndEvent = false
	ctl := a.comp.controller
	events := a.pendingEvents
	a.pendingEvents = nil
	for _, ev := range events {
		doc := ev.Target.Document()
		doc.DispatchEvent(ev)
		// Dispatch may have destroyed the target or the animation; only the
		// local copies are safe from here on.
		if ev.Type == EventAnimationEnd {
			// Restore the un-animated style.
			ev.Target.MarkStyleDirty()
			ctl.scheduleStyleUpdate(doc)
		}
	}
}

// sinceStart returns the elapsed time against the recorded start time, for
// re-requesting a host-side start.
func (a *animBase) sinceStart() time.Duration {
	if a.startTime.IsZero() {
		return 0
	}
	d := Now().Sub(a.startTime)
	if d < 0 {
		return 0
	}
	return d
}

func (a *animBase) updatePlayState(run bool) {
	if a.paused == run || a.isNew() {
		in := inputPlayStatePaused
		if run {
			in = inputPlayStateRunning
		}
		a.updateState(in, time.Time{}, 0)
	}
}

func (a *animBase) playStateRunning() bool {
	return a.decl != nil && a.decl.PlayState == style.PlayRunning
}

func (a *animBase) setAnimating(b bool) { a.animating = b }

func (a *animBase) isNew() bool { return a.state == stateNew }

func (a *animBase) waitingToStart() bool {
	return a.state == stateNew || a.state == stateStartWaitTimer
}

func (a *animBase) preactive() bool {
	switch a.state {
	case stateNew, stateStartWaitTimer, stateStartWaitStyleAvailable, stateStartWaitResponse:
		return true
	}
	return false
}

func (a *animBase) postactive() bool { return a.state == stateDone }

func (a *animBase) active() bool { return !a.preactive() && !a.postactive() }

// runningState means started and not yet finished; paused states count.
func (a *animBase) runningState() bool { return !a.isNew() && !a.postactive() }

func (a *animBase) waitingForStartTime() bool { return a.state == stateStartWaitResponse }

func (a *animBase) waitingForStyleAvailable() bool { return a.state == stateStartWaitStyleAvailable }

func (a *animBase) isAnimatingProperty(p style.Property, isRunningNow bool) bool {
	if isRunningNow {
		return !a.waitingToStart() && !a.postactive() && a.self.affectsProperty(p)
	}
	return !a.postactive() && a.self.affectsProperty(p)
}
