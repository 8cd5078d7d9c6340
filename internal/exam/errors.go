package exam

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPhase matches any *InvalidPhaseError via errors.Is.
	ErrInvalidPhase = errors.New("invalid phase")

	// ErrUnknownQuestion matches any *UnknownQuestionError via errors.Is.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidAnswer matches any *InvalidAnswerError via errors.Is.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrSessionClosed is returned by Start after Close.
	ErrSessionClosed = errors.New("session closed")
)

// InvalidPhaseError reports a mutator called in a phase that forbids it.
// The session is left untouched.
type InvalidPhaseError struct {
	Op    string
	Phase Phase
}

func (e *InvalidPhaseError) Error() string {
	return fmt.Sprintf("%s not allowed in phase %s", e.Op, e.Phase)
}

func (e *InvalidPhaseError) Is(target error) bool { return target == ErrInvalidPhase }

// UnknownQuestionError reports a question id absent from the question set.
type UnknownQuestionError struct {
	QuestionID string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question %q", e.QuestionID)
}

func (e *UnknownQuestionError) Is(target error) bool { return target == ErrUnknownQuestion }

// InvalidAnswerError reports an answer that does not fit its question's kind.
type InvalidAnswerError struct {
	QuestionID string
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer for question %q: %s", e.QuestionID, e.Reason)
}

func (e *InvalidAnswerError) Is(target error) bool { return target == ErrInvalidAnswer }
