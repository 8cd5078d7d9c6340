package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
	"github.com/abhisek/examiz/internal/ui/theme"
)

func (s *ExamScreen) View(width, height int) string {
	if s.controls.Prompt != nil && !s.controls.Navigation {
		return renderLoginPrompt(width, s.controls.Prompt)
	}
	switch s.confirm {
	case confirmFinish:
		return renderConfirm(width, "Finish the exam now?",
			fmt.Sprintf("%s left on the clock. You can still change answers before submitting.",
				layout.FormatClock(s.state.TimeRemainingSeconds)),
			"[Y] Yes, finish", "[N] No, keep going")
	case confirmSubmit:
		perf := s.state.Performance
		return renderConfirm(width, "Submit your answers?",
			fmt.Sprintf("%d of %d answered. Submitted answers cannot be changed.", perf.Answered, perf.Total),
			"[Y] Submit", "[N] Cancel")
	}
	if s.submitting {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n\n  Submitting...")
	}
	return s.renderQuestionView(width)
}

func (s *ExamScreen) renderQuestionView(width int) string {
	state := s.state
	q := s.current()

	var b strings.Builder

	if banner := s.phaseBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	// Question info line.
	info := fmt.Sprintf("  Question %d of %d", state.CurrentIndex+1, state.Total)
	if q.Tier != "" {
		info += "  ·  " + q.Tier.DisplayName()
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(info))
	if state.IsMarked(q.ID) {
		b.WriteString("  " + theme.Marked.Render("⚑ marked for review"))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(max(width-4, 10)).
		PaddingLeft(2).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt))
	b.WriteString("\n\n")

	if q.HasOptions() {
		b.WriteString(indent(s.choices.View(), "  "))
	} else {
		b.WriteString("  Answer: " + s.input.View())
		b.WriteString("\n")
		if a, ok := state.Answers[q.ID]; ok && a.IsText {
			b.WriteString(theme.Hint.Render(fmt.Sprintf("  Saved: %q", a.Text)))
			b.WriteString("\n")
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + components.NewProgressBar("Answered", state.Performance.Answered, state.Performance.Total, min(width-4, 60)).View())
	b.WriteString("\n\n")
	b.WriteString(s.renderQuestionMap(width))

	return b.String()
}

func (s *ExamScreen) phaseBanner() string {
	var text string
	fg := theme.Accent
	switch s.state.Phase {
	case ex.PhaseNotStarted:
		text = "Not started"
		fg = theme.TextDim
	case ex.PhaseReview:
		if s.state.TimeRemainingSeconds == 0 {
			text = "Time's up. Review your answers, then press Ctrl+S to submit."
			fg = theme.Error
		} else {
			text = "Review. Press Ctrl+S to submit."
		}
	case ex.PhaseSubmitted:
		text = "Submitted"
		fg = theme.Success
	default:
		return ""
	}
	return lipgloss.NewStyle().Foreground(fg).Bold(true).Render("  " + text)
}

// renderQuestionMap draws one cell per question: the current one in
// brackets, answered ones filled, marked ones flagged.
func (s *ExamScreen) renderQuestionMap(width int) string {
	cells := make([]string, 0, s.state.Total)
	set := s.sess.Questions()
	for i := 0; i < s.state.Total; i++ {
		id := set.At(i).ID
		label := fmt.Sprintf("%d", i+1)
		if s.state.IsMarked(id) {
			label += "⚑"
		}

		style := theme.Hint
		switch {
		case s.state.IsMarked(id):
			style = theme.Marked
		case s.state.IsAnswered(id):
			style = theme.Chosen
		}
		if i == s.state.CurrentIndex {
			label = "[" + label + "]"
			style = theme.Selected
		}
		cells = append(cells, style.Render(label))
	}
	return lipgloss.NewStyle().
		Width(max(width-4, 10)).
		PaddingLeft(2).
		Render(strings.Join(cells, " "))
}

func renderLoginPrompt(width int, p *ex.LoginPrompt) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Primary).Bold(true).Render(p.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Foreground(theme.Text).Render(p.Message))
	b.WriteString("\n\n")
	actions := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		actions[i] = theme.ButtonInactive.Render(a)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, actions...)))
	return b.String()
}

func renderConfirm(width int, title, detail, yes, no string) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(detail))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render(yes))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render(no))
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
