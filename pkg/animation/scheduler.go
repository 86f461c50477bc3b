package animation

import (
	"sort"
	"time"
)

// scheduler is the cooperative timer queue behind a Controller. All engine
// timers (per-animation start/loop/end timers, event delivery timers, the
// shared repeating tick) register here and fire when the host pumps
// Controller.Step from its event loop. Nothing fires between pumps, which is
// what keeps the whole engine single-threaded.
type scheduler struct {
	timers []*timer
}

// timer is a one-shot or repeating timer. A zero-delay one-shot fires on the
// next Step; it is never collapsed into a synchronous call, because zero
// duration animations still have to walk their full event sequence.
type timer struct {
	s        *scheduler
	fn       func()
	fireAt   time.Time
	interval time.Duration // 0 = one-shot
	active   bool
}

func newScheduler() *scheduler {
	return &scheduler{}
}

func (s *scheduler) newTimer(fn func()) *timer {
	t := &timer{s: s, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// release drops a timer from the queue entirely (used on teardown).
func (s *scheduler) release(t *timer) {
	t.active = false
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

func (t *timer) startOneShot(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.fireAt = Now().Add(d)
	t.interval = 0
	t.active = true
}

func (t *timer) startRepeating(interval time.Duration) {
	t.fireAt = Now().Add(interval)
	t.interval = interval
	t.active = true
}

func (t *timer) stop() {
	t.active = false
}

func (t *timer) isActive() bool {
	return t.active
}

// step fires every timer due at the current clock reading, in deadline order.
// Timer callbacks may start, stop or release other timers; the due list is
// snapshotted first and each entry is re-checked before its callback runs.
func (s *scheduler) step() {
	now := Now()
	var due []*timer
	for _, t := range s.timers {
		if t.active && !t.fireAt.After(now) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].fireAt.Before(due[j].fireAt)
	})
	for _, t := range due {
		if !t.active || t.fireAt.After(now) {
			continue
		}
		if t.interval > 0 {
			t.fireAt = now.Add(t.interval)
		} else {
			t.active = false
		}
		t.fn()
	}
}

// hasPending reports whether any timer is armed.
func (s *scheduler) hasPending() bool {
	for _, t := range s.timers {
		if t.active {
			return true
		}
	}
	return false
}
