// Package terms shows the exam rules and starts the session once the
// examinee accepts them.
package terms

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

var rules = []string{
	"The countdown starts as soon as you accept.",
	"You can move freely between questions and change answers.",
	"Mark questions you want to revisit with Ctrl+R.",
	"When time runs out the exam moves to review automatically.",
	"Submitting is final.",
}

// TermsScreen is the entry screen of an exam.
type TermsScreen struct {
	sess     *ex.Session
	controls ex.Controls
	next     func() screen.Screen
	menu     components.Menu
	errMsg   string
}

var _ screen.Screen = (*TermsScreen)(nil)
var _ screen.KeyHintProvider = (*TermsScreen)(nil)

// New creates a TermsScreen. next builds the screen shown once the session
// has started.
func New(sess *ex.Session, controls ex.Controls, next func() screen.Screen) *TermsScreen {
	s := &TermsScreen{sess: sess, controls: controls, next: next}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Accept and start", Action: s.accept, Disabled: !controls.Navigation},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *TermsScreen) Init() tea.Cmd {
	return nil
}

func (s *TermsScreen) Title() string {
	return "Before you begin"
}

func (s *TermsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *TermsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *TermsScreen) accept() tea.Cmd {
	if err := s.sess.Start(true); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := s.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *TermsScreen) View(width, height int) string {
	st := s.sess.State()
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(st.Title))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		fmt.Sprintf("%d questions  ·  %s", st.Total, layout.FormatClock(st.DurationSeconds))))
	b.WriteString("\n\n")

	var rb strings.Builder
	for _, r := range rules {
		rb.WriteString("• " + r + "\n")
	}
	card := theme.Card.Width(min(width-8, 70)).Render(strings.TrimRight(rb.String(), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	b.WriteString("\n\n")

	if p := s.controls.Prompt; p != nil {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render(p.Title))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render(p.Message))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render(strings.Join(p.Actions, "  ·  ")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Error).Render(s.errMsg))
	}
	return b.String()
}
