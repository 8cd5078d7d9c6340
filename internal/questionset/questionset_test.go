package questionset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/exam"
)

const validDoc = `{
  "title": "Go basics",
  "duration_seconds": 900,
  "questions": [
    {"id": "q1", "prompt": "Zero value of int?", "kind": "choice", "options": ["0", "nil", "undefined"], "correct_index": 0, "tier": "beginner", "topics": ["types"]},
    {"id": "q2", "prompt": "Maps are safe for concurrent writes.", "kind": "true_false", "correct_index": 1, "tier": "intermediate"},
    {"id": "q3", "prompt": "Name the tool that formats Go code.", "kind": "free_text"}
  ]
}`

func TestParse_Valid(t *testing.T) {
	loaded, err := Parse("basics.json", []byte(validDoc))
	require.NoError(t, err)

	set := loaded.Set
	assert.Equal(t, "Go basics", set.Title)
	assert.Equal(t, 900, loaded.DurationSeconds)
	require.Equal(t, 3, set.Len())

	q1 := set.At(0)
	assert.Equal(t, exam.KindChoice, q1.Kind)
	assert.Equal(t, exam.TierBeginner, q1.Tier)
	require.NotNil(t, q1.CorrectIndex)
	assert.Equal(t, 0, *q1.CorrectIndex)
	assert.Equal(t, []string{"types"}, q1.Topics)

	assert.Equal(t, []string{"True", "False"}, set.At(1).Options)
	assert.Equal(t, exam.Tier(""), set.At(2).Tier)
	assert.Equal(t, []exam.Tier{exam.TierBeginner, exam.TierIntermediate}, set.Tiers())
}

func TestParse_TitleFallsBackToSource(t *testing.T) {
	loaded, err := Parse("quiz.json", []byte(`{"questions":[{"id":"a","prompt":"p","kind":"free_text"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "quiz.json", loaded.Set.Title)
	assert.Zero(t, loaded.DurationSeconds)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"no questions", `{"questions": []}`},
		{"unknown kind", `{"questions":[{"id":"a","prompt":"p","kind":"essay"}]}`},
		{"unknown tier", `{"questions":[{"id":"a","prompt":"p","kind":"free_text","tier":"expert"}]}`},
		{"missing prompt", `{"questions":[{"id":"a","kind":"free_text"}]}`},
		{"extra field", `{"questions":[{"id":"a","prompt":"p","kind":"free_text","points":3}]}`},
		{"duplicate id", `{"questions":[{"id":"a","prompt":"p","kind":"free_text"},{"id":"a","prompt":"q","kind":"free_text"}]}`},
		{"single option", `{"questions":[{"id":"a","prompt":"p","kind":"choice","options":["x"]}]}`},
		{"correct out of range", `{"questions":[{"id":"a","prompt":"p","kind":"choice","options":["x","y"],"correct_index":5}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("doc.json", []byte(tt.doc))
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exam.json")
	require.NoError(t, os.WriteFile(path, []byte(validDoc), 0o644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Set.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
