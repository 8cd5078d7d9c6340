package exam

import (
	"fmt"
	"strconv"
	"time"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for terms to be accepted
	PhaseActive                  // Countdown running
	PhaseReview                  // Finished early or time expired; timer frozen
	PhaseSubmitted               // Terminal; handed to the reporter
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseActive:
		return "active"
	case PhaseReview:
		return "review"
	case PhaseSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ChangeReason says why a phase transition happened.
type ChangeReason string

const (
	ReasonStarted     ChangeReason = "started"
	ReasonFinished    ChangeReason = "finished"
	ReasonTimeExpired ChangeReason = "time-expired"
	ReasonSubmitted   ChangeReason = "submitted"
)

// Answer is a submitted value: an option index, or free text.
type Answer struct {
	Option int    `json:"option"`
	Text   string `json:"text,omitempty"`
	IsText bool   `json:"is_text,omitempty"`
}

// ChoiceAnswer returns an answer selecting option i.
func ChoiceAnswer(i int) Answer {
	return Answer{Option: i}
}

// TextAnswer returns a free-text answer.
func TextAnswer(s string) Answer {
	return Answer{Text: s, IsText: true}
}

func (a Answer) String() string {
	if a.IsText {
		return strconv.Quote(a.Text)
	}
	return "option " + strconv.Itoa(a.Option+1)
}

// State is a read-only copy of a session for rendering.
type State struct {
	SessionID            string
	Title                string
	Phase                Phase
	CurrentIndex         int
	Total                int
	Answers              map[string]Answer
	Marked               map[string]bool
	TimeRemainingSeconds int
	DurationSeconds      int
	Performance          Performance
}

// TimeRemaining returns the remaining time as a Duration.
func (s State) TimeRemaining() time.Duration {
	return time.Duration(s.TimeRemainingSeconds) * time.Second
}

// IsAnswered reports whether question id has an answer.
func (s State) IsAnswered(id string) bool {
	_, ok := s.Answers[id]
	return ok
}

// IsMarked reports whether question id is flagged for review.
func (s State) IsMarked(id string) bool {
	return s.Marked[id]
}

// PhaseChange describes a completed phase transition.
type PhaseChange struct {
	From   Phase
	To     Phase
	Reason ChangeReason
	State  State
}
