package exam

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	ex "github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// SubmittedFunc builds the screen shown after a submit. err is a reporting
// failure; the result is valid either way.
type SubmittedFunc func(result ex.Result, err error) screen.Screen

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmFinish
	confirmSubmit
)

// ExamScreen renders a running session and turns keys into session calls.
type ExamScreen struct {
	sess     *ex.Session
	controls ex.Controls
	onSubmit SubmittedFunc
	log      zerolog.Logger

	state      ex.State
	shownIndex int
	choices    components.ChoiceList
	input      components.TextInput
	confirm    confirmKind
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*ExamScreen)(nil)
var _ screen.KeyHintProvider = (*ExamScreen)(nil)
var _ screen.StatusProvider = (*ExamScreen)(nil)

// New creates an ExamScreen over sess.
func New(sess *ex.Session, controls ex.Controls, onSubmit SubmittedFunc, log zerolog.Logger) *ExamScreen {
	s := &ExamScreen{
		sess:       sess,
		controls:   controls,
		onSubmit:   onSubmit,
		log:        log.With().Str("component", "exam_screen").Logger(),
		shownIndex: -1,
	}
	s.sync()
	return s
}

func (s *ExamScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshCmd()}
	if s.textMode() {
		cmds = append(cmds, s.input.Init())
	}
	return tea.Batch(cmds...)
}

func (s *ExamScreen) Title() string {
	return s.state.Title
}

func (s *ExamScreen) Status() layout.HeaderStatus {
	return layout.HeaderStatus{
		RemainingSeconds: s.state.TimeRemainingSeconds,
		Answered:         s.state.Performance.Answered,
		Total:            s.state.Total,
	}
}

func (s *ExamScreen) KeyHints() []layout.KeyHint {
	if !s.controls.Navigation {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	switch s.confirm {
	case confirmFinish:
		return []layout.KeyHint{{Key: "Y", Description: "Finish"}, {Key: "N", Description: "Keep going"}}
	case confirmSubmit:
		return []layout.KeyHint{{Key: "Y", Description: "Submit"}, {Key: "N", Description: "Cancel"}}
	}

	hints := []layout.KeyHint{{Key: "Tab/⇧Tab", Description: "Next/Prev"}}
	if s.textMode() {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Save"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "1-9/Enter", Description: "Answer"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+R", Description: "Mark"})
	switch s.state.Phase {
	case ex.PhaseActive:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+F", Description: "Finish"})
	case ex.PhaseReview:
		hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
	}
	return hints
}

func (s *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		cmd := s.sync()
		if s.state.Phase == ex.PhaseSubmitted {
			return s, cmd
		}
		return s, tea.Batch(cmd, refreshCmd())

	case submittedMsg:
		return s.handleSubmitted(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.textMode() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if !s.controls.Navigation || s.submitting {
		return s, nil
	}
	key := msg.String()

	if s.confirm != confirmNone {
		switch key {
		case "y", "Y":
			kind := s.confirm
			s.confirm = confirmNone
			if kind == confirmSubmit {
				s.submitting = true
				return s, s.submitCmd()
			}
			s.saveDraft()
			s.apply(s.sess.Finish())
			return s, s.sync()
		case "n", "N", "esc":
			s.confirm = confirmNone
		}
		return s, nil
	}

	s.errMsg = ""
	switch key {
	case "tab":
		s.saveDraft()
		s.apply(s.sess.GoNext())
		return s, s.sync()
	case "shift+tab":
		s.saveDraft()
		s.apply(s.sess.GoPrevious())
		return s, s.sync()
	case "home":
		s.saveDraft()
		s.apply(s.sess.GoTo(0))
		return s, s.sync()
	case "end":
		s.saveDraft()
		s.apply(s.sess.GoTo(s.state.Total - 1))
		return s, s.sync()
	case "ctrl+r":
		return s, s.toggleMark()
	case "ctrl+f":
		if s.state.Phase == ex.PhaseActive {
			s.confirm = confirmFinish
		}
		return s, nil
	case "ctrl+s":
		if s.state.Phase == ex.PhaseReview {
			s.confirm = confirmSubmit
		}
		return s, nil
	}

	if s.textMode() {
		if key == "enter" {
			q := s.current()
			s.apply(s.sess.SetAnswer(q.ID, ex.TextAnswer(s.input.Value())))
			return s, s.sync()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "n", "right", "l":
		s.apply(s.sess.GoNext())
		return s, s.sync()
	case "p", "left", "h":
		s.apply(s.sess.GoPrevious())
		return s, s.sync()
	case "m":
		return s, s.toggleMark()
	}

	var picked int
	s.choices, picked = s.choices.Update(msg)
	if picked >= 0 {
		s.apply(s.sess.SetAnswer(s.current().ID, ex.ChoiceAnswer(picked)))
		return s, s.sync()
	}
	return s, nil
}

// saveDraft records typed free text before the cursor leaves the question.
// Blank input and text equal to the saved answer are left alone.
func (s *ExamScreen) saveDraft() {
	if !s.textMode() {
		return
	}
	value := s.input.Value()
	if strings.TrimSpace(value) == "" {
		return
	}
	q := s.current()
	if saved, ok := s.state.Answers[q.ID]; ok && saved == ex.TextAnswer(value) {
		return
	}
	s.apply(s.sess.SetAnswer(q.ID, ex.TextAnswer(value)))
}

func (s *ExamScreen) toggleMark() tea.Cmd {
	_, err := s.sess.ToggleMark(s.current().ID)
	s.apply(err)
	return s.sync()
}

func (s *ExamScreen) submitCmd() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		res, err := sess.Submit(context.Background())
		return submittedMsg{Result: res, Err: err}
	}
}

func (s *ExamScreen) handleSubmitted(msg submittedMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	var phaseErr *ex.InvalidPhaseError
	if errors.As(msg.Err, &phaseErr) {
		s.apply(msg.Err)
		return s, s.sync()
	}
	if msg.Err != nil {
		s.log.Error().Err(msg.Err).Msg("Result reporting failed")
	}
	s.sync()
	if s.onSubmit == nil {
		return s, nil
	}
	next := s.onSubmit(msg.Result, msg.Err)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// apply records a rejected action for display.
func (s *ExamScreen) apply(err error) {
	if err == nil {
		return
	}
	s.log.Debug().Err(err).Msg("Action rejected")
	s.errMsg = err.Error()
}

// sync reloads session state and rebuilds the answer widget when the
// cursor moved to another question.
func (s *ExamScreen) sync() tea.Cmd {
	s.state = s.sess.State()
	if s.state.CurrentIndex == s.shownIndex {
		return nil
	}
	s.shownIndex = s.state.CurrentIndex

	q := s.current()
	answer, answered := s.state.Answers[q.ID]
	if q.HasOptions() {
		chosen := -1
		if answered && !answer.IsText {
			chosen = answer.Option
		}
		s.choices = components.NewChoiceList(q.Options, chosen)
		return nil
	}

	value := ""
	if answered && answer.IsText {
		value = answer.Text
	}
	s.input = components.NewTextInput("Type your answer...", value, 500)
	return s.input.Init()
}

func (s *ExamScreen) current() ex.Question {
	return s.sess.Questions().At(s.state.CurrentIndex)
}

func (s *ExamScreen) textMode() bool {
	return !s.current().HasOptions()
}
