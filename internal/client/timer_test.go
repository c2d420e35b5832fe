package client

import (
	"testing"
	"time"
)

// fakeClock lets tests advance the stopwatch's wall clock manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStopwatch() (*Stopwatch, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStopwatch()
	s.now = clock.now
	return s, clock
}

func TestStopwatch_StartStop(t *testing.T) {
	s, clock := newTestStopwatch()

	s.Start()
	if !s.Running() {
		t.Fatal("expected running after Start")
	}
	clock.advance(10 * time.Minute)

	if got := s.Stop(); got != 10*time.Minute {
		t.Errorf("expected 10m elapsed, got %v", got)
	}
	if s.Running() {
		t.Error("expected stopped after Stop")
	}
}

func TestStopwatch_Resume(t *testing.T) {
	s, clock := newTestStopwatch()

	s.Start()
	clock.advance(5 * time.Minute)
	s.Stop()

	clock.advance(time.Hour) // paused time does not count

	s.Start()
	clock.advance(3 * time.Minute)

	if got := s.Elapsed(); got != 8*time.Minute {
		t.Errorf("expected 8m accumulated across segments, got %v", got)
	}
}

func TestStopwatch_CountsWallClockWhileRunning(t *testing.T) {
	s, clock := newTestStopwatch()

	s.Start()
	clock.advance(90 * time.Minute)

	if got := s.Elapsed(); got != 90*time.Minute {
		t.Errorf("expected live elapsed 90m, got %v", got)
	}
	if !s.Running() {
		t.Error("Elapsed should not stop the stopwatch")
	}
}

func TestStopwatch_StartIdempotent(t *testing.T) {
	s, clock := newTestStopwatch()

	s.Start()
	clock.advance(2 * time.Minute)
	s.Start() // no-op, must not reset the running segment
	clock.advance(2 * time.Minute)

	if got := s.Elapsed(); got != 4*time.Minute {
		t.Errorf("expected 4m, got %v", got)
	}
}

func TestStopwatch_Reset(t *testing.T) {
	s, clock := newTestStopwatch()

	s.Start()
	clock.advance(time.Minute)
	s.Reset()

	if s.Running() {
		t.Error("expected stopped after Reset")
	}
	if got := s.Elapsed(); got != 0 {
		t.Errorf("expected zero elapsed after Reset, got %v", got)
	}
}
