package exam

import (
	"context"
	"time"
)

// Observer is told about session changes after each mutation completes.
// Calls happen outside the session lock, so observers may read the session.
type Observer interface {
	PhaseChanged(change PhaseChange)
	PerformanceChanged(prev, next Performance)
}

// Watchdog is secondary recurring work that runs only while the session is
// active, such as the inactivity detector. The session starts and stops it
// together with the countdown. Implementations must not call back into the
// session from Start or Stop.
type Watchdog interface {
	Start()
	Stop()
}

// Result is the final record handed to the reporting collaborator on submit.
type Result struct {
	SessionID   string
	Title       string
	Answers     map[string]Answer
	Marked      []string
	Performance Performance
	SubmittedAt time.Time
}

// Reporter receives submitted results for grading or persistence.
type Reporter interface {
	Report(ctx context.Context, result Result) error
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, result Result) error

func (f ReporterFunc) Report(ctx context.Context, result Result) error { return f(ctx, result) }
