package summary

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
)

type stubScreen struct{}

func (*stubScreen) Init() tea.Cmd                             { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (*stubScreen) View(int, int) string                      { return "stub" }
func (*stubScreen) Title() string                             { return "stub" }

func testResult() ex.Result {
	return ex.Result{
		SessionID: "sess-1",
		Title:     "Go basics",
		Marked:    []string{"q4"},
		Performance: ex.Performance{
			CompletionScorePercent:    75,
			AverageSecondsPerQuestion: 40,
			Strengths:                 []ex.Tier{ex.TierBeginner},
			Weaknesses:                []ex.Tier{ex.TierIntermediate, ex.TierAdvanced},
			RecommendedTier:           ex.TierIntermediate,
			Answered:                  3,
			Total:                     4,
			ElapsedSeconds:            160,
		},
		SubmittedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), nil, nil)
	if s.Title() != "Exam Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Exam Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testResult(), nil, nil).View(100, 30)
	for _, want := range []string{"75%", "3/4", "2:40", "Beginner", "Intermediate, Advanced", "Suggested next level: Intermediate", "q4"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "could not be saved") {
		t.Error("unexpected report error")
	}
}

func TestSummaryScreen_ReportError(t *testing.T) {
	view := New(testResult(), errors.New("disk full"), nil).View(100, 30)
	if !strings.Contains(view, "disk full") {
		t.Error("expected report error in view")
	}
}

func TestSummaryScreen_EnterQuits(t *testing.T) {
	s := New(testResult(), nil, nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestSummaryScreen_History(t *testing.T) {
	s := New(testResult(), nil, func() screen.Screen { return &stubScreen{} })
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Error("expected PushScreenMsg")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}

	noHistory := New(testResult(), nil, nil)
	if _, cmd := noHistory.Update(tea.KeyPressMsg{Code: 'h', Text: "h"}); cmd != nil {
		t.Error("expected no command without history")
	}
}
