package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/notify"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/components"
	"github.com/abhisek/examiz/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	notes      *notify.Store
	onActivity func()
	width      int
	height     int
}

// NewModel creates the root model showing initial. notes may be nil when
// nothing raises notifications; onActivity, when set, is called for every
// key press.
func NewModel(initial screen.Screen, notes *notify.Store, onActivity func()) AppModel {
	return AppModel{
		router:     router.New(initial),
		notes:      notes,
		onActivity: onActivity,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.onActivity != nil {
			m.onActivity()
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+x":
			m.dismissNewest()
			return m, nil
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// dismissNewest removes the most recent notification.
func (m AppModel) dismissNewest() {
	if m.notes == nil {
		return
	}
	items := m.notes.List()
	if len(items) == 0 {
		return
	}
	m.notes.Dismiss(items[len(items)-1].ID)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current window size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	status := layout.HeaderStatus{RemainingSeconds: -1}
	var footerHints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
		if kp, ok := active.(screen.KeyHintProvider); ok {
			footerHints = kp.KeyHints()
		}
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(footerHints, m.width)

	toasts := ""
	if m.notes != nil {
		toasts = components.RenderToasts(m.notes.List(), m.width)
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if toasts != "" {
		contentHeight -= lipgloss.Height(toasts)
	}
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	if toasts != "" {
		content = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts) + "\n" + content
	}
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(m AppModel) error {
	p := tea.NewProgram(m)
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
