// Package schedule provides cancellable scheduled tasks driven by an
// injectable clock. The exam engine owns every task it creates and cancels
// it explicitly; nothing here relies on garbage collection or lifetimes.
package schedule

import "time"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// Task is a handle to scheduled work. A task does nothing until Start is
// called. Once Cancel returns no further invocation is scheduled, but with
// the real scheduler one invocation already past its cancellation check may
// still start. Functions that must not act after Cancel re-check their own
// handle under the owner's lock. Cancel may be called from inside the
// task's function. Both methods are idempotent.
type Task interface {
	Start()
	Cancel()
	Running() bool
}

// Scheduler creates tasks and exposes the clock they run against.
type Scheduler interface {
	Clock

	// Every returns a task that calls fn once per interval after Start.
	Every(interval time.Duration, fn func()) Task

	// After returns a task that calls fn once, delay after Start.
	After(delay time.Duration, fn func()) Task
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
