// Package exam implements a single-examinee timed exam session: the session
// store and its phase machine, navigation, answers and review marks, the
// countdown driver, and the performance analyzer.
package exam

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/examiz/internal/schedule"
)

// Session is the store for one examinee's run through a question set.
// Every mutator is synchronous and atomic; observers are notified after the
// mutation is visible.
type Session struct {
	mu sync.Mutex

	id              string
	set             *QuestionSet
	durationSeconds int
	sched           schedule.Scheduler
	log             zerolog.Logger
	observers       []Observer
	watchdogs       []Watchdog
	reporter        Reporter

	phase        Phase
	currentIndex int
	answers      map[string]Answer
	marked       map[string]struct{}
	remaining    int
	perf         Performance
	countdown    schedule.Task
	closed       bool
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the scheduler driving the countdown. Defaults to the wall clock.
func WithScheduler(sched schedule.Scheduler) Option {
	return func(s *Session) { s.sched = sched }
}

// WithLogger sets the session logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observers = append(s.observers, o) }
}

// WithWatchdog registers work that runs only while the session is active.
func WithWatchdog(w Watchdog) Option {
	return func(s *Session) { s.watchdogs = append(s.watchdogs, w) }
}

// WithReporter sets the collaborator that receives the result on submit.
func WithReporter(r Reporter) Option {
	return func(s *Session) { s.reporter = r }
}

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession creates a session in PhaseNotStarted with the full duration on the clock.
func NewSession(set *QuestionSet, durationSeconds int, opts ...Option) (*Session, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptyQuestionSet
	}
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("session duration must be positive, got %ds", durationSeconds)
	}

	s := &Session{
		set:             set,
		durationSeconds: durationSeconds,
		log:             zerolog.Nop(),
		phase:           PhaseNotStarted,
		answers:         make(map[string]Answer),
		marked:          make(map[string]struct{}),
		remaining:       durationSeconds,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.sched == nil {
		s.sched = schedule.NewReal()
	}
	s.log = s.log.With().Str("component", "exam").Str("session_id", s.id).Logger()
	s.perf = Analyze(s.set, s.answers, s.durationSeconds, s.remaining)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Questions returns the session's question set.
func (s *Session) Questions() *QuestionSet {
	return s.set
}

// Start moves NotStarted -> Active when acceptedTerms is true. Without
// accepted terms, or when already started, it does nothing.
func (s *Session) Start(acceptedTerms bool) error {
	return s.mutate(func(c *changes) error {
		if s.closed {
			return ErrSessionClosed
		}
		if s.phase == PhaseSubmitted {
			return &InvalidPhaseError{Op: "start", Phase: s.phase}
		}
		if !acceptedTerms {
			s.log.Debug().Msg("Start ignored: terms not accepted")
			return nil
		}
		if s.phase != PhaseNotStarted {
			return nil
		}
		s.transition(PhaseActive, ReasonStarted, c)
		return nil
	})
}

// Finish ends the active period early (Active -> Review). Outside Active it
// does nothing, except after submission where it is rejected.
func (s *Session) Finish() error {
	return s.mutate(func(c *changes) error {
		switch s.phase {
		case PhaseSubmitted:
			return &InvalidPhaseError{Op: "finish", Phase: s.phase}
		case PhaseActive:
			s.transition(PhaseReview, ReasonFinished, c)
		}
		return nil
	})
}

// Submit moves Review -> Submitted and hands the result to the reporter, if
// any. A reporter failure is returned wrapped; the session stays submitted.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	var result Result
	err := s.mutate(func(c *changes) error {
		if s.phase != PhaseReview {
			return &InvalidPhaseError{Op: "submit", Phase: s.phase}
		}
		s.transition(PhaseSubmitted, ReasonSubmitted, c)
		result = s.result()
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if s.reporter != nil {
		if err := s.reporter.Report(ctx, result); err != nil {
			s.log.Error().Err(err).Msg("Failed to report result")
			return result, fmt.Errorf("report result: %w", err)
		}
	}
	return result, nil
}

// Close tears the session down: the countdown and every watchdog are
// cancelled before Close returns. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimers()
	s.log.Debug().Str("phase", s.phase.String()).Msg("Session closed")
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Performance returns the latest performance snapshot.
func (s *Session) Performance() Performance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perf
}

// Current returns the question under the cursor.
func (s *Session) Current() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.At(s.currentIndex)
}

// changes collects what a mutation did so observers can be told after unlock.
type changes struct {
	phase       *PhaseChange
	perfChanged bool
	perfPrev    Performance
	perfNext    Performance
}

// mutate runs fn under the lock, then notifies observers.
func (s *Session) mutate(fn func(c *changes) error) error {
	var c changes
	s.mu.Lock()
	err := fn(&c)
	s.mu.Unlock()

	if c.perfChanged {
		for _, o := range s.observers {
			o.PerformanceChanged(c.perfPrev, c.perfNext)
		}
	}
	if c.phase != nil {
		for _, o := range s.observers {
			o.PhaseChanged(*c.phase)
		}
	}
	return err
}

// recompute rebuilds the performance snapshot. Caller holds s.mu.
func (s *Session) recompute(c *changes) {
	next := Analyze(s.set, s.answers, s.durationSeconds, s.remaining)
	if !next.Equal(s.perf) {
		if !c.perfChanged {
			c.perfPrev = s.perf
		}
		c.perfChanged = true
		c.perfNext = next
	}
	s.perf = next
}

// transition changes phase and starts or stops timers. Caller holds s.mu.
func (s *Session) transition(to Phase, reason ChangeReason, c *changes) {
	from := s.phase
	s.phase = to
	if from == PhaseActive && to != PhaseActive {
		s.stopTimers()
	}
	if to == PhaseActive {
		s.startTimers()
	}

	s.log.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("reason", string(reason)).
		Int("remaining_secs", s.remaining).
		Msg("Phase changed")

	c.phase = &PhaseChange{From: from, To: to, Reason: reason, State: s.snapshot()}
}

// snapshot copies the state. Caller holds s.mu.
func (s *Session) snapshot() State {
	answers := make(map[string]Answer, len(s.answers))
	for id, a := range s.answers {
		answers[id] = a
	}
	marked := make(map[string]bool, len(s.marked))
	for id := range s.marked {
		marked[id] = true
	}
	perf := s.perf
	perf.Strengths = append([]Tier(nil), s.perf.Strengths...)
	perf.Weaknesses = append([]Tier(nil), s.perf.Weaknesses...)

	return State{
		SessionID:            s.id,
		Title:                s.set.Title,
		Phase:                s.phase,
		CurrentIndex:         s.currentIndex,
		Total:                s.set.Len(),
		Answers:              answers,
		Marked:               marked,
		TimeRemainingSeconds: s.remaining,
		DurationSeconds:      s.durationSeconds,
		Performance:          perf,
	}
}

// result builds the submission record. Caller holds s.mu.
func (s *Session) result() Result {
	st := s.snapshot()
	marked := make([]string, 0, len(st.Marked))
	for id := range st.Marked {
		marked = append(marked, id)
	}
	sort.Strings(marked)
	return Result{
		SessionID:   s.id,
		Title:       s.set.Title,
		Answers:     st.Answers,
		Marked:      marked,
		Performance: st.Performance,
		SubmittedAt: s.sched.Now(),
	}
}

// rejectSubmitted returns an InvalidPhaseError once the session is submitted.
// Caller holds s.mu.
func (s *Session) rejectSubmitted(op string) error {
	if s.phase == PhaseSubmitted {
		return &InvalidPhaseError{Op: op, Phase: s.phase}
	}
	return nil
}
