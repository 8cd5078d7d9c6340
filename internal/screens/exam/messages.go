package exam

import (
	"time"

	tea "charm.land/bubbletea/v2"

	ex "github.com/abhisek/examiz/internal/exam"
)

// refreshMsg re-reads session state so the countdown and any engine-driven
// phase change show up on screen.
type refreshMsg time.Time

// submittedMsg carries the outcome of a submit.
type submittedMsg struct {
	Result ex.Result
	Err    error
}

const refreshInterval = time.Second

func refreshCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}
