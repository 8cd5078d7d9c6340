// Package questionset loads exam question sets from JSON documents.
package questionset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/examiz/internal/exam"
)

// ValidationError reports a document that failed schema or semantic checks.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question set %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Document is the on-disk representation of a question set.
type Document struct {
	Title           string         `json:"title,omitempty"`
	DurationSeconds int            `json:"duration_seconds,omitempty"`
	Questions       []QuestionJSON `json:"questions"`
}

// QuestionJSON is one question as written in a document.
type QuestionJSON struct {
	ID           string   `json:"id"`
	Prompt       string   `json:"prompt"`
	Kind         string   `json:"kind"`
	Options      []string `json:"options,omitempty"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	Tier         string   `json:"tier,omitempty"`
	Topics       []string `json:"topics,omitempty"`
}

// Loaded is a parsed question set plus the document's suggested duration
// (zero when the document does not set one).
type Loaded struct {
	Set             *exam.QuestionSet
	DurationSeconds int
}

// LoadFile reads and parses the question set at path.
func LoadFile(path string) (*Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question set: %w", err)
	}
	return Parse(path, data)
}

// Parse validates raw JSON against the document schema and builds a
// question set. source names the input in error messages.
func Parse(source string, data []byte) (*Loaded, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := documentValidator()
	if err != nil {
		return nil, fmt.Errorf("compile question set schema: %w", err)
	}
	if err := sch.Validate(raw); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	title := doc.Title
	if title == "" {
		title = source
	}
	set, err := exam.NewQuestionSet(title, doc.toQuestions())
	if err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	return &Loaded{Set: set, DurationSeconds: doc.DurationSeconds}, nil
}

func (d Document) toQuestions() []exam.Question {
	qs := make([]exam.Question, 0, len(d.Questions))
	for _, q := range d.Questions {
		qs = append(qs, exam.Question{
			ID:           q.ID,
			Prompt:       q.Prompt,
			Kind:         exam.Kind(q.Kind),
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Tier:         exam.Tier(q.Tier),
			Topics:       q.Topics,
		})
	}
	return qs
}
