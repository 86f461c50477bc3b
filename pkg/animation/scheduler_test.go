package animation

import (
	"testing"
	"time"
)

func withFakeClock(t *testing.T) *fakeClock {
	clock := &fakeClock{now: time.Unix(500, 0)}
	prev := SetClock(clock)
	t.Cleanup(func() { SetClock(prev) })
	return clock
}

func TestZeroDelayOneShotFiresOnNextStep(t *testing.T) {
	withFakeClock(t)
	s := newScheduler()

	fired := 0
	tm := s.newTimer(func() { fired++ })
	tm.startOneShot(0)
	if fired != 0 {
		t.Fatal("zero-delay timer must not fire synchronously")
	}

	s.step()
	if fired != 1 {
		t.Fatalf("fired %d times after one step, want 1", fired)
	}
	s.step()
	if fired != 1 {
		t.Fatalf("one-shot fired %d times, want 1", fired)
	}
}

func TestOneShotWaitsForDeadline(t *testing.T) {
	clock := withFakeClock(t)
	s := newScheduler()

	fired := false
	tm := s.newTimer(func() { fired = true })
	tm.startOneShot(100 * time.Millisecond)

	clock.now = clock.now.Add(99 * time.Millisecond)
	s.step()
	if fired {
		t.Fatal("timer fired before its deadline")
	}

	clock.now = clock.now.Add(time.Millisecond)
	s.step()
	if !fired {
		t.Fatal("timer did not fire at its deadline")
	}
}

func TestRepeatingTimerKeepsCadence(t *testing.T) {
	clock := withFakeClock(t)
	s := newScheduler()

	fired := 0
	tm := s.newTimer(func() { fired++ })
	tm.startRepeating(25 * time.Millisecond)

	for i := 0; i < 8; i++ {
		clock.now = clock.now.Add(25 * time.Millisecond)
		s.step()
	}
	if fired != 8 {
		t.Fatalf("fired %d times over 8 intervals, want 8", fired)
	}

	tm.stop()
	clock.now = clock.now.Add(100 * time.Millisecond)
	s.step()
	if fired != 8 {
		t.Fatal("stopped timer kept firing")
	}
}

func TestTimersArmedDuringStepWaitForNextStep(t *testing.T) {
	withFakeClock(t)
	s := newScheduler()

	second := 0
	t2 := s.newTimer(func() { second++ })
	t1 := s.newTimer(func() { t2.startOneShot(0) })
	t1.startOneShot(0)

	s.step()
	if second != 0 {
		t.Fatal("timer armed during a step must not fire in the same step")
	}
	s.step()
	if second != 1 {
		t.Fatalf("second timer fired %d times, want 1", second)
	}
}

func TestStopInsideCallbackSuppressesDueTimer(t *testing.T) {
	withFakeClock(t)
	s := newScheduler()

	fired := false
	var victim *timer
	killer := s.newTimer(func() { victim.stop() })
	victim = s.newTimer(func() { fired = true })

	killer.startOneShot(0)
	victim.startOneShot(0)
	s.step()
	if fired {
		t.Fatal("timer stopped by an earlier callback still fired")
	}
}

func TestReleaseDropsTimer(t *testing.T) {
	withFakeClock(t)
	s := newScheduler()

	tm := s.newTimer(func() {})
	tm.startOneShot(0)
	if !s.hasPending() {
		t.Fatal("armed timer should be pending")
	}
	s.release(tm)
	if s.hasPending() {
		t.Fatal("released timer should not be pending")
	}
}
