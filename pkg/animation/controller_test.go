package animation

import (
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/style"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

// fakeDoc is a minimal host document: it re-resolves dirty targets through
// the controller and reports a finished pass, the way a real style system
// would.
type fakeDoc struct {
	ctl       *Controller
	targets   []*fakeTarget
	listeners map[EventType]bool
	events    []Event
	passes    int
}

func (d *fakeDoc) UpdateStyles() {
	d.passes++
	for _, t := range d.targets {
		if !t.dirty {
			continue
		}
		t.dirty = false
		t.committed = d.ctl.UpdateAnimations(t.self, t.declared)
	}
	d.ctl.StyleAvailable()
}

func (d *fakeDoc) HasListener(t EventType) bool { return d.listeners[t] }

func (d *fakeDoc) DispatchEvent(e Event) { d.events = append(d.events, e) }

// fakeTarget plays the render object: it holds the committed style and a
// declared style the next pass resolves to. self carries the outermost value
// when a test wraps the target with extra capabilities.
type fakeTarget struct {
	doc       *fakeDoc
	self      Target
	committed *style.Style
	declared  *style.Style
	dirty     bool
}

func (t *fakeTarget) Document() Document  { return t.doc }
func (t *fakeTarget) Style() *style.Style { return t.committed }
func (t *fakeTarget) MarkStyleDirty()     { t.dirty = true }

// setStyle simulates the cascade producing a new declared style, followed by
// one style pass.
func (t *fakeTarget) setStyle(s *style.Style) {
	t.declared = s
	t.dirty = true
	t.doc.UpdateStyles()
}

// starterTarget additionally claims animations the way a compositor-backed
// host would, confirming start times out-of-band.
type starterTarget struct {
	fakeTarget
	accept bool
	starts []string
	ends   []string
}

func (t *starterTarget) StartAnimation(p style.Property, name string, elapsed time.Duration) bool {
	if name == "" {
		name = p.String()
	}
	t.starts = append(t.starts, name)
	return t.accept
}

func (t *starterTarget) EndAnimation(p style.Property, name string) {
	if name == "" {
		name = p.String()
	}
	t.ends = append(t.ends, name)
}

type harness struct {
	t     *testing.T
	clock *fakeClock
	ctl   *Controller
	doc   *fakeDoc
	tgt   *fakeTarget
}

func newHarness(t *testing.T) *harness {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	prev := SetClock(clock)
	t.Cleanup(func() { SetClock(prev) })

	ctl := NewController()
	doc := &fakeDoc{ctl: ctl, listeners: map[EventType]bool{}}
	tgt := &fakeTarget{doc: doc}
	tgt.self = tgt
	doc.targets = append(doc.targets, tgt)
	return &harness{t: t, clock: clock, ctl: ctl, doc: doc, tgt: tgt}
}

// settle pumps pending zero-delay timers without advancing time.
func (h *harness) settle() {
	for i := 0; i < 6; i++ {
		h.ctl.Step()
	}
}

// run advances the clock in 5ms increments, pumping timers along the way, so
// boundary timers fire exactly on their deadlines.
func (h *harness) run(d time.Duration) {
	end := h.clock.now.Add(d)
	for h.clock.now.Before(end) {
		h.clock.now = h.clock.now.Add(5 * time.Millisecond)
		h.ctl.Step()
	}
}

func (h *harness) opacity() float64 {
	h.t.Helper()
	if h.tgt.committed == nil {
		h.t.Fatal("no committed style")
	}
	return h.tgt.committed.Opacity
}

func opacityStyle(v float64) *style.Style {
	s := style.New()
	s.Opacity = v
	return s
}

func transitionDecl(prop style.Property, dur time.Duration) *style.Declaration {
	return &style.Declaration{Property: prop, Duration: dur, IterationCount: 1}
}

func opacityFrames(values ...float64) *style.KeyframeList {
	list := &style.KeyframeList{Properties: []style.Property{style.PropertyOpacity}}
	for i, v := range values {
		key := 0.0
		if len(values) > 1 {
			key = float64(i) / float64(len(values)-1)
		}
		list.Frames = append(list.Frames, style.Keyframe{Key: key, Style: opacityStyle(v)})
	}
	return list
}

func TestTransitionBlendsOpacity(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	h.tgt.setStyle(to)

	// Until the start handshake completes the committed style keeps the
	// old value.
	if got := h.opacity(); got != 1 {
		t.Fatalf("opacity before start = %v, want 1", got)
	}
	h.settle()
	if got := h.opacity(); got != 1 {
		t.Fatalf("opacity at start = %v, want 1", got)
	}

	h.run(500 * time.Millisecond)
	if got := h.opacity(); got != 0.5 {
		t.Fatalf("opacity at midpoint = %v, want 0.5", got)
	}

	h.run(500 * time.Millisecond)
	if got := h.opacity(); got != 0 {
		t.Fatalf("opacity at end = %v, want exactly 0", got)
	}

	h.settle()
	if h.ctl.IsAnimatingProperty(h.tgt, style.PropertyOpacity, false) {
		t.Fatal("transition should be cleaned up after finishing")
	}
	if h.ctl.Pending() {
		t.Fatal("no timers should remain after the transition finishes")
	}
}

func TestTransitionEndEvent(t *testing.T) {
	h := newHarness(t)
	h.doc.listeners[EventTransitionEnd] = true

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)
	h.tgt.setStyle(func() *style.Style { s := from.Clone(); s.Opacity = 0; return s }())

	h.settle()
	h.run(time.Second)
	h.settle()

	if len(h.doc.events) != 1 {
		t.Fatalf("got %d events, want 1", len(h.doc.events))
	}
	ev := h.doc.events[0]
	if ev.Type != EventTransitionEnd {
		t.Errorf("event type = %v, want transitionend", ev.Type)
	}
	if ev.Property != style.PropertyOpacity {
		t.Errorf("event property = %v, want opacity", ev.Property)
	}
	if ev.Elapsed != time.Second {
		t.Errorf("event elapsed = %v, want 1s", ev.Elapsed)
	}
}

func TestZeroLengthTransitionNeverStarts(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, 0)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	h.tgt.setStyle(to)

	if h.tgt.committed != to {
		t.Fatal("style should pass through untouched")
	}
	if h.ctl.IsAnimatingProperty(h.tgt, style.PropertyOpacity, false) {
		t.Fatal("no transition should exist for a zero-duration declaration")
	}
}

func TestKeyframeAnimationAlternates(t *testing.T) {
	h := newHarness(t)

	s := opacityStyle(1)
	s.Animations = []*style.Declaration{{
		Name:           "pulse",
		Duration:       time.Second,
		IterationCount: 3,
		Direction:      style.DirectionAlternate,
		Keyframes:      opacityFrames(0, 1),
	}}
	h.tgt.setStyle(s)

	// With no delay the first frame applies immediately.
	if got := h.opacity(); got != 0 {
		t.Fatalf("opacity before start = %v, want first frame 0", got)
	}

	h.settle()
	h.run(500 * time.Millisecond)
	if got := h.opacity(); got != 0.5 {
		t.Fatalf("opacity at 0.5s = %v, want 0.5", got)
	}

	// 1.25s into an alternating animation is 0.25 into the second
	// (reversed) iteration.
	h.run(750 * time.Millisecond)
	if got := h.opacity(); got != 0.75 {
		t.Fatalf("opacity at 1.25s = %v, want 0.75", got)
	}

	h.run(2 * time.Second)
	h.settle()
	if got := h.opacity(); got != 1 {
		t.Fatalf("opacity after finish = %v, want final frame 1", got)
	}
	if h.ctl.IsAnimatingProperty(h.tgt, style.PropertyOpacity, false) {
		t.Fatal("animation should be cleaned up after finishing")
	}
}

func TestKeyframeMiddleFrameRemapsAcrossIterations(t *testing.T) {
	h := newHarness(t)

	frames := &style.KeyframeList{Properties: []style.Property{style.PropertyLeft}}
	for i, v := range []float64{0, 100, 200} {
		fs := style.New()
		fs.Left = style.Px(v)
		frames.Frames = append(frames.Frames, style.Keyframe{Key: float64(i) / 2, Style: fs})
	}

	s := style.New()
	s.Animations = []*style.Declaration{{
		Name:           "slide",
		Duration:       2 * time.Second,
		IterationCount: 2,
		Direction:      style.DirectionAlternate,
		Keyframes:      frames,
	}}
	h.tgt.setStyle(s)
	h.settle()

	// 1.5s is midway through the upper keyframe pair on the first pass.
	h.run(1500 * time.Millisecond)
	if got := h.tgt.committed.Left; got != style.Px(150) {
		t.Fatalf("left at 1.5s = %v, want 150px", got)
	}

	// The iteration boundary flips the fraction to exactly 1; the final
	// frame must still bracket instead of ending the animation early.
	h.run(500 * time.Millisecond)
	if got := h.tgt.committed.Left; got != style.Px(200) {
		t.Fatalf("left at the 2s boundary = %v, want final frame 200px", got)
	}

	// 2.5s is 0.25 into the reversed iteration, so the flipped fraction
	// lands midway through the same upper pair again.
	h.run(500 * time.Millisecond)
	if got := h.tgt.committed.Left; got != style.Px(150) {
		t.Fatalf("left at 2.5s = %v, want 150px", got)
	}
	if !h.ctl.IsAnimatingProperty(h.tgt, style.PropertyLeft, true) {
		t.Fatal("animation should still be running mid-flight")
	}
}

func TestKeyframeAnimationOverridesTransition(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	to.Animations = []*style.Declaration{{
		Name:           "hold",
		Duration:       time.Second,
		IterationCount: 1,
		Keyframes:      opacityFrames(0.25, 0.25),
	}}
	h.tgt.setStyle(to)
	h.settle()

	// The animation owns opacity while it runs; the transition keeps its
	// state machine alive underneath but never shows.
	h.run(500 * time.Millisecond)
	if got := h.opacity(); got != 0.25 {
		t.Fatalf("opacity mid-animation = %v, want animation value 0.25", got)
	}

	h.run(time.Second)
	h.settle()
	if got := h.opacity(); got != 0 {
		t.Fatalf("opacity after both finish = %v, want target value 0", got)
	}
}

func TestPlayStatePauseAndResume(t *testing.T) {
	h := newHarness(t)

	running := &style.Declaration{
		Name:           "fade",
		Duration:       time.Second,
		IterationCount: 1,
		Keyframes:      opacityFrames(0, 1),
	}
	s := opacityStyle(1)
	s.Animations = []*style.Declaration{running}
	h.tgt.setStyle(s)
	h.settle()

	h.run(400 * time.Millisecond)
	if got := h.opacity(); got != 0.4 {
		t.Fatalf("opacity at 0.4s = %v, want 0.4", got)
	}

	paused := *running
	paused.PlayState = style.PlayPaused
	ps := s.Clone()
	ps.Animations = []*style.Declaration{&paused}
	h.tgt.setStyle(ps)

	// A paused animation holds its value no matter how much time passes.
	h.run(time.Second)
	if got := h.opacity(); got != 0.4 {
		t.Fatalf("opacity while paused = %v, want 0.4", got)
	}

	rs := s.Clone()
	rs.Animations = []*style.Declaration{running}
	h.tgt.setStyle(rs)
	h.settle()

	h.run(300 * time.Millisecond)
	if got := h.opacity(); got != 0.7 {
		t.Fatalf("opacity 0.3s after resume = %v, want 0.7", got)
	}

	h.run(400 * time.Millisecond)
	h.settle()
	if got := h.opacity(); got != 1 {
		t.Fatalf("final opacity = %v, want 1", got)
	}
}

func TestAnimationStartEventsFollowDeclarationOrder(t *testing.T) {
	h := newHarness(t)
	h.doc.listeners[EventAnimationStart] = true

	s := opacityStyle(1)
	s.Animations = []*style.Declaration{
		{Name: "first", Duration: time.Second, IterationCount: 1, Keyframes: opacityFrames(0, 1)},
		{Name: "second", Duration: time.Second, IterationCount: 1, Keyframes: opacityFrames(1, 0)},
	}
	h.tgt.setStyle(s)
	h.settle()

	if len(h.doc.events) != 2 {
		t.Fatalf("got %d start events, want 2", len(h.doc.events))
	}
	if h.doc.events[0].Name != "first" || h.doc.events[1].Name != "second" {
		t.Fatalf("event order = %q, %q; want first, second",
			h.doc.events[0].Name, h.doc.events[1].Name)
	}
	for _, ev := range h.doc.events {
		if ev.Type != EventAnimationStart {
			t.Errorf("event type = %v, want animationstart", ev.Type)
		}
		if ev.Elapsed != 0 {
			t.Errorf("start event elapsed = %v, want 0", ev.Elapsed)
		}
	}
}

func TestZeroDurationAnimationDeliversStartAndEnd(t *testing.T) {
	h := newHarness(t)
	h.doc.listeners[EventAnimationStart] = true
	h.doc.listeners[EventAnimationEnd] = true

	s := opacityStyle(0.5)
	s.Animations = []*style.Declaration{{
		Name:           "blink",
		Delay:          100 * time.Millisecond,
		IterationCount: 1,
		Keyframes:      opacityFrames(0, 1),
	}}
	h.tgt.setStyle(s)
	h.run(100 * time.Millisecond)
	h.settle()

	// A delay-only animation walks its whole event sequence in one tick;
	// both events must arrive, start first.
	if len(h.doc.events) != 2 {
		t.Fatalf("got %d events, want start and end", len(h.doc.events))
	}
	if h.doc.events[0].Type != EventAnimationStart || h.doc.events[1].Type != EventAnimationEnd {
		t.Fatalf("event order = %v, %v; want animationstart then animationend",
			h.doc.events[0].Type, h.doc.events[1].Type)
	}
	for _, ev := range h.doc.events {
		if ev.Name != "blink" {
			t.Errorf("event name = %q, want blink", ev.Name)
		}
		if ev.Elapsed != 0 {
			t.Errorf("%v elapsed = %v, want 0", ev.Type, ev.Elapsed)
		}
	}
}

func TestCancelAnimationsSnapsToTarget(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	h.tgt.setStyle(to)
	h.settle()
	h.run(500 * time.Millisecond)
	if got := h.opacity(); got != 0.5 {
		t.Fatalf("opacity at midpoint = %v, want 0.5", got)
	}

	h.ctl.CancelAnimations(h.tgt)
	if !h.tgt.dirty {
		t.Fatal("cancel should schedule one more style recompute")
	}

	// The next cascade drops the transition declarations; the value snaps.
	h.tgt.setStyle(opacityStyle(0))
	if got := h.opacity(); got != 0 {
		t.Fatalf("opacity after cancel = %v, want 0", got)
	}
	if h.ctl.IsAnimatingProperty(h.tgt, style.PropertyOpacity, false) {
		t.Fatal("no animation should survive a cancel")
	}
}

func TestCancelSuspendedAnimationsSkipsRepaint(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	h.tgt.setStyle(to)
	h.settle()
	h.run(500 * time.Millisecond)

	h.ctl.SuspendAnimations(h.doc)
	h.settle()
	h.tgt.dirty = false

	// A suspended target is not being painted; cancel must not schedule a
	// recompute for it.
	h.ctl.CancelAnimations(h.tgt)
	if h.tgt.dirty {
		t.Fatal("canceling a suspended target scheduled a style recompute")
	}
	if h.ctl.IsAnimatingProperty(h.tgt, style.PropertyOpacity, false) {
		t.Fatal("no animation should survive a cancel")
	}
}

func TestSuspendAndResumeDocument(t *testing.T) {
	h := newHarness(t)

	s := opacityStyle(1)
	s.Animations = []*style.Declaration{{
		Name:           "fade",
		Duration:       time.Second,
		IterationCount: 1,
		Keyframes:      opacityFrames(0, 1),
	}}
	h.tgt.setStyle(s)
	h.settle()
	h.run(300 * time.Millisecond)
	if got := h.opacity(); got != 0.3 {
		t.Fatalf("opacity at 0.3s = %v, want 0.3", got)
	}

	h.ctl.SuspendAnimations(h.doc)
	h.run(time.Second)
	if got := h.opacity(); got != 0.3 {
		t.Fatalf("opacity while suspended = %v, want 0.3", got)
	}

	h.ctl.ResumeAnimations(h.doc)
	h.settle()
	h.run(700 * time.Millisecond)
	h.settle()
	if got := h.opacity(); got != 1 {
		t.Fatalf("final opacity = %v, want 1", got)
	}
}

func TestStarterConfirmsTransitionStartTime(t *testing.T) {
	h := newHarness(t)

	tgt := &starterTarget{accept: true}
	tgt.doc = h.doc
	tgt.self = tgt
	h.doc.targets = []*fakeTarget{&tgt.fakeTarget}

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	tgt.setStyle(to)
	h.settle()

	if len(tgt.starts) != 1 || tgt.starts[0] != "opacity" {
		t.Fatalf("host starts = %v, want one opacity start", tgt.starts)
	}

	// Without a confirmation the transition stays at its starting value.
	h.run(200 * time.Millisecond)
	if got := tgt.committed.Opacity; got != 1 {
		t.Fatalf("opacity before confirmation = %v, want 1", got)
	}

	h.ctl.SetTransitionStartTime(tgt, style.PropertyOpacity, h.clock.now)
	h.settle()
	h.run(500 * time.Millisecond)
	if got := tgt.committed.Opacity; got != 0.5 {
		t.Fatalf("opacity 0.5s after confirmed start = %v, want 0.5", got)
	}

	h.run(500 * time.Millisecond)
	h.settle()
	if len(tgt.ends) != 1 || tgt.ends[0] != "opacity" {
		t.Fatalf("host ends = %v, want one opacity end", tgt.ends)
	}
}

func TestStarterConfirmsAnimationStartTime(t *testing.T) {
	h := newHarness(t)

	tgt := &starterTarget{accept: true}
	tgt.doc = h.doc
	tgt.self = tgt
	h.doc.targets = []*fakeTarget{&tgt.fakeTarget}

	s := opacityStyle(1)
	s.Animations = []*style.Declaration{{
		Name:           "fade",
		Duration:       time.Second,
		IterationCount: 1,
		Keyframes:      opacityFrames(0, 1),
	}}
	tgt.setStyle(s)
	h.settle()

	if len(tgt.starts) != 1 || tgt.starts[0] != "fade" {
		t.Fatalf("host starts = %v, want one fade start", tgt.starts)
	}

	h.ctl.SetAnimationStartTime(tgt, h.clock.now)
	h.settle()
	h.run(500 * time.Millisecond)
	if got := tgt.committed.Opacity; got != 0.5 {
		t.Fatalf("opacity 0.5s after confirmed start = %v, want 0.5", got)
	}
}

func TestAnimatingOpacityImposesStacking(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0.5
	h.tgt.setStyle(to)
	h.settle()
	h.run(500 * time.Millisecond)

	if h.tgt.committed.HasAutoZIndex {
		t.Fatal("a blended style with partial opacity must not keep z-index auto")
	}
	if h.tgt.committed.ZIndex != 0 {
		t.Fatalf("z-index = %d, want 0", h.tgt.committed.ZIndex)
	}
}

func TestRetargetedTransitionRestarts(t *testing.T) {
	h := newHarness(t)

	from := opacityStyle(1)
	from.Transitions = []*style.Declaration{transitionDecl(style.PropertyOpacity, time.Second)}
	h.tgt.setStyle(from)

	to := from.Clone()
	to.Opacity = 0
	h.tgt.setStyle(to)
	h.settle()
	h.run(500 * time.Millisecond)

	// Retarget mid-flight; the transition restarts from the blended value
	// toward the new goal.
	back := from.Clone()
	back.Opacity = 1
	h.tgt.setStyle(back)
	h.settle()
	h.run(time.Second)
	h.settle()

	if got := h.opacity(); got != 1 {
		t.Fatalf("opacity after retargeted transition = %v, want 1", got)
	}
}
