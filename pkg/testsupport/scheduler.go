package testsupport

import (
	"sync"
	"time"

	"github.com/goliatone/go-surveybuilder/pkg/autosave"
)

// ManualScheduler is a deterministic autosave.Scheduler. Time only moves
// when Advance is called; due callbacks run synchronously, in deadline order,
// on the caller's goroutine.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*ManualTimer
}

var _ autosave.Scheduler = (*ManualScheduler)(nil)

// ManualTimer is a timer created by ManualScheduler.
type ManualTimer struct {
	owner   *ManualScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements autosave.Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) autosave.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &ManualTimer{owner: s, at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop implements autosave.Timer.
func (t *ManualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Now reports the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending reports how many timers are armed.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			count++
		}
	}
	return count
}

// Advance moves the clock forward by d, firing every timer that falls due.
// Timers armed by a callback fire too when their deadline is within d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var next *ManualTimer
		for _, t := range s.timers {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}
