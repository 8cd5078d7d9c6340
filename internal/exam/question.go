package exam

import (
	"errors"
	"fmt"
)

// Kind is the answer format of a question.
type Kind string

const (
	KindChoice    Kind = "choice"
	KindTrueFalse Kind = "true_false"
	KindFreeText  Kind = "free_text"
)

// Tier is a difficulty label attached to a question.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// AllTiers returns all tiers from easiest to hardest.
func AllTiers() []Tier {
	return []Tier{TierBeginner, TierIntermediate, TierAdvanced}
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return true
	}
	return false
}

// Rank orders tiers from 0 (beginner) upward. Unknown tiers rank -1.
func (t Tier) Rank() int {
	for i, tier := range AllTiers() {
		if tier == t {
			return i
		}
	}
	return -1
}

// DisplayName returns a human-readable label for the tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierIntermediate:
		return "Intermediate"
	case TierAdvanced:
		return "Advanced"
	default:
		return string(t)
	}
}

// TrueFalseOptions are the options used for true/false questions that omit them.
var TrueFalseOptions = []string{"True", "False"}

// Question is one immutable item of an exam.
type Question struct {
	ID      string
	Prompt  string
	Kind    Kind
	Options []string

	// CorrectIndex is carried through for reporting; scoring never reads it.
	CorrectIndex *int

	Tier   Tier // empty when untiered
	Topics []string
}

// clone returns q with its own copies of the slices and CorrectIndex.
func (q Question) clone() Question {
	q.Options = append([]string(nil), q.Options...)
	q.Topics = append([]string(nil), q.Topics...)
	if q.CorrectIndex != nil {
		i := *q.CorrectIndex
		q.CorrectIndex = &i
	}
	return q
}

// HasOptions reports whether answers to q are option indexes.
func (q Question) HasOptions() bool {
	return q.Kind == KindChoice || q.Kind == KindTrueFalse
}

// accepts checks that a fits q: an in-range option index for option
// questions, text for free-text questions.
func (q Question) accepts(a Answer) error {
	if !q.HasOptions() {
		if !a.IsText {
			return &InvalidAnswerError{QuestionID: q.ID, Reason: "free-text question needs a text answer"}
		}
		return nil
	}
	if a.IsText {
		return &InvalidAnswerError{QuestionID: q.ID, Reason: "option question needs an option index"}
	}
	if a.Option < 0 || a.Option >= len(q.Options) {
		return &InvalidAnswerError{
			QuestionID: q.ID,
			Reason:     fmt.Sprintf("option %d out of range [0, %d)", a.Option, len(q.Options)),
		}
	}
	return nil
}

// validate checks the per-question rules.
func (q Question) validate() error {
	if q.ID == "" {
		return errors.New("empty id")
	}
	switch q.Kind {
	case KindChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("question %q: choice questions need at least 2 options", q.ID)
		}
	case KindTrueFalse:
		if len(q.Options) != 2 {
			return fmt.Errorf("question %q: true/false questions need exactly 2 options", q.ID)
		}
	case KindFreeText:
	default:
		return fmt.Errorf("question %q: unknown kind %q", q.ID, q.Kind)
	}
	if q.Tier != "" && !q.Tier.Valid() {
		return fmt.Errorf("question %q: unknown tier %q", q.ID, q.Tier)
	}
	if q.CorrectIndex != nil && q.HasOptions() {
		if i := *q.CorrectIndex; i < 0 || i >= len(q.Options) {
			return fmt.Errorf("question %q: correct index %d out of range", q.ID, i)
		}
	}
	return nil
}

// ErrEmptyQuestionSet is returned when a question set has no questions.
var ErrEmptyQuestionSet = errors.New("question set is empty")

// QuestionSet is the ordered, read-only list of questions for a session.
type QuestionSet struct {
	Title     string
	questions []Question
	index     map[string]int
}

// NewQuestionSet validates qs and builds a QuestionSet. True/false questions
// without options receive TrueFalseOptions.
func NewQuestionSet(title string, qs []Question) (*QuestionSet, error) {
	if len(qs) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	set := &QuestionSet{
		Title:     title,
		questions: make([]Question, len(qs)),
		index:     make(map[string]int, len(qs)),
	}
	for i, q := range qs {
		if q.Kind == KindTrueFalse && len(q.Options) == 0 {
			q.Options = TrueFalseOptions
		}
		q = q.clone()
		if err := q.validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if _, dup := set.index[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id %q", i+1, q.ID)
		}
		set.index[q.ID] = i
		set.questions[i] = q
	}
	return set, nil
}

// Len returns the number of questions.
func (s *QuestionSet) Len() int {
	return len(s.questions)
}

// At returns a copy of the question at position i.
func (s *QuestionSet) At(i int) Question {
	return s.questions[i].clone()
}

// Questions returns a deep copy of the ordered question list.
func (s *QuestionSet) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.clone()
	}
	return out
}

// Lookup returns the position of the question with the given id.
func (s *QuestionSet) Lookup(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Tiers returns the distinct tiers present, easiest first.
func (s *QuestionSet) Tiers() []Tier {
	present := make(map[Tier]bool)
	for _, q := range s.questions {
		if q.Tier != "" {
			present[q.Tier] = true
		}
	}
	var tiers []Tier
	for _, t := range AllTiers() {
		if present[t] {
			tiers = append(tiers, t)
		}
	}
	return tiers
}
