package exam

import (
	"time"

	"github.com/abhisek/examiz/internal/schedule"
)

// TickInterval is the countdown resolution.
const TickInterval = time.Second

// startTimers schedules the countdown and starts every watchdog.
// Caller holds s.mu.
func (s *Session) startTimers() {
	if s.closed {
		return
	}
	var task schedule.Task
	task = s.sched.Every(TickInterval, func() { s.tick(task) })
	s.countdown = task
	task.Start()
	for _, w := range s.watchdogs {
		w.Start()
	}
}

// stopTimers cancels the countdown and stops every watchdog. Caller holds s.mu.
func (s *Session) stopTimers() {
	if s.countdown != nil {
		s.countdown.Cancel()
		s.countdown = nil
	}
	for _, w := range s.watchdogs {
		w.Stop()
	}
}

// tick decrements the clock by one second. A tick from a task that is no
// longer the session's countdown is dropped, so a late tick can never touch
// a finished or torn-down session. At zero the session moves to Review.
func (s *Session) tick(task schedule.Task) {
	_ = s.mutate(func(c *changes) error {
		if s.closed || s.phase != PhaseActive || s.countdown != task {
			return nil
		}
		if s.remaining > 0 {
			s.remaining--
		}
		s.recompute(c)
		if s.remaining == 0 {
			s.transition(PhaseReview, ReasonTimeExpired, c)
		}
		return nil
	})
}
