package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/notify"
	"github.com/abhisek/examiz/internal/router"
	"github.com/abhisek/examiz/internal/schedule"
	"github.com/abhisek/examiz/internal/screen"
	"github.com/abhisek/examiz/internal/ui/layout"
)

type stubScreen struct {
	title string
	keys  []string
}

func (s *stubScreen) Init() tea.Cmd { return nil }
func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *stubScreen) View(int, int) string { return "content of " + s.title }
func (s *stubScreen) Title() string        { return s.title }
func (s *stubScreen) Status() layout.HeaderStatus {
	return layout.HeaderStatus{RemainingSeconds: 95, Answered: 1, Total: 4}
}

func newStore() *notify.Store {
	return notify.NewStore(schedule.NewManual(time.Unix(0, 0)), notify.WithIDGenerator(notify.Sequential("n")))
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestKeyPressSignalsActivity(t *testing.T) {
	var n int
	m := NewModel(&stubScreen{title: "exam"}, nil, func() { n++ })

	m, _ = update(t, m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if n != 2 {
		t.Errorf("activity signals = %d, want 2", n)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := NewModel(&stubScreen{title: "exam"}, nil, nil)
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestCtrlXDismissesNewest(t *testing.T) {
	store := newStore()
	store.Push(notify.Notification{Title: "first"})
	store.Push(notify.Notification{Title: "second"})

	m := NewModel(&stubScreen{title: "exam"}, store, nil)
	update(t, m, tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})

	items := store.List()
	if len(items) != 1 || items[0].Title != "first" {
		t.Errorf("remaining = %+v, want [first]", items)
	}
}

func TestEscPopsOnlyAboveRoot(t *testing.T) {
	root := &stubScreen{title: "root"}
	m := NewModel(root, nil, nil)

	// At the root, esc reaches the screen.
	m, _ = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(root.keys) != 1 || root.keys[0] != "esc" {
		t.Errorf("root keys = %v, want [esc]", root.keys)
	}

	m, _ = update(t, m, router.PushScreenMsg{Screen: &stubScreen{title: "top"}})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestViewComposesHeaderToastsAndContent(t *testing.T) {
	store := newStore()
	store.Push(notify.Notification{Title: "Halfway there", Message: "2 of 4", Severity: notify.SeverityInfo, DisplayDuration: time.Second})

	m := NewModel(&stubScreen{title: "Go basics"}, store, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.render()
	for _, want := range []string{"Examiz", "Go basics", "1:35", "1/4", "Halfway there", "content of Go basics"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m := NewModel(&stubScreen{title: "x"}, nil, nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}
