package client

import (
	"sync"
	"time"
)

// Stopwatch measures practice time against the wall clock, so elapsed time
// keeps counting even if the process is suspended while running.
type Stopwatch struct {
	mu          sync.Mutex
	now         func() time.Time
	startedAt   time.Time
	accumulated time.Duration
	running     bool
}

// NewStopwatch creates a stopped stopwatch at zero.
func NewStopwatch() *Stopwatch {
	return &Stopwatch{now: time.Now}
}

// Start begins or resumes timing. Starting a running stopwatch is a no-op.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.startedAt = s.now()
	s.running = true
}

// Stop pauses timing and returns the total elapsed time so far.
func (s *Stopwatch) Stop() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.accumulated += s.now().Sub(s.startedAt)
		s.running = false
	}
	return s.accumulated
}

// Elapsed returns the total measured time, including the live segment when
// the stopwatch is running.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.accumulated + s.now().Sub(s.startedAt)
	}
	return s.accumulated
}

// Running reports whether the stopwatch is currently timing.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Reset stops the stopwatch and clears the elapsed time.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.accumulated = 0
	s.startedAt = time.Time{}
}
