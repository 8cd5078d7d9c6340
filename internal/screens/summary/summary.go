package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// SummaryScreen displays a submitted exam's performance.
type SummaryScreen struct {
	result    ex.Result
	reportErr error
	history   func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. reportErr is shown when the result could not
// be saved. history may be nil when no results store is configured.
func New(result ex.Result, reportErr error, history func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{result: result, reportErr: reportErr, history: history}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Exam Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Exit"}}
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return hints
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, tea.Quit
		case "h":
			if s.history != nil {
				next := s.history()
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	perf := s.result.Performance
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Exam submitted!"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(s.result.Title))
	b.WriteString("\n\n")

	bar := components.NewProgressBar("Completion", perf.Answered, perf.Total, min(width-8, 60)).View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d/%d        Time used: %s        Avg: %.0fs per question",
		perf.Answered, perf.Total, layout.FormatClock(perf.ElapsedSeconds), perf.AverageSecondsPerQuestion)
	b.WriteString(center.Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString(center.Foreground(theme.TextDim).Render("Tiers"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Success).Render("Strengths: " + tierList(perf.Strengths)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Accent).Render("Needs work: " + tierList(perf.Weaknesses)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(
		"Suggested next level: " + perf.RecommendedTier.DisplayName()))
	b.WriteString("\n")

	if len(s.result.Marked) > 0 {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Still marked for review: %s", strings.Join(s.result.Marked, ", "))))
		b.WriteString("\n")
	}

	if s.reportErr != nil {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(
			fmt.Sprintf("Result could not be saved: %v", s.reportErr)))
		b.WriteString("\n")
	}

	return b.String()
}

func tierList(tiers []ex.Tier) string {
	if len(tiers) == 0 {
		return "none"
	}
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = t.DisplayName()
	}
	return strings.Join(names, ", ")
}
