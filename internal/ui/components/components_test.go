package components

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/notify"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestChoiceList_CursorAndPick(t *testing.T) {
	c := NewChoiceList([]string{"a", "b", "c"}, -1)
	if c.Cursor != 0 || c.Chosen != -1 {
		t.Fatalf("initial cursor=%d chosen=%d", c.Cursor, c.Chosen)
	}

	c, picked := c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if picked != -1 || c.Cursor != 1 {
		t.Errorf("down: picked=%d cursor=%d", picked, c.Cursor)
	}

	c, picked = c.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != 1 || c.Chosen != 1 {
		t.Errorf("enter: picked=%d chosen=%d", picked, c.Chosen)
	}

	c, picked = c.Update(keyPress('3'))
	if picked != 2 || c.Cursor != 2 {
		t.Errorf("digit: picked=%d cursor=%d", picked, c.Cursor)
	}

	_, picked = c.Update(keyPress('9'))
	if picked != -1 {
		t.Errorf("out-of-range digit picked %d", picked)
	}
}

func TestChoiceList_ClampsCursor(t *testing.T) {
	c := NewChoiceList([]string{"a", "b"}, 1)
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if c.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", c.Cursor)
	}
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if c.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", c.Cursor)
	}
}

func TestChoiceList_View(t *testing.T) {
	view := NewChoiceList([]string{"True", "False"}, 1).View()
	if !strings.Contains(view, "1) True") || !strings.Contains(view, "2) False") {
		t.Errorf("unexpected view:\n%s", view)
	}
}

func TestProgressBar_View(t *testing.T) {
	bar := NewProgressBar("Answered", 2, 4, 40)
	if bar.Percent() != 50 {
		t.Errorf("Percent() = %v, want 50", bar.Percent())
	}
	view := bar.View()
	for _, want := range []string{"Answered", "2/4", "50%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q: %q", want, view)
		}
	}
	if got := NewProgressBar("", 0, 0, 20).Percent(); got != 0 {
		t.Errorf("empty bar Percent() = %v, want 0", got)
	}
}

func TestRenderToasts(t *testing.T) {
	if RenderToasts(nil, 80) != "" {
		t.Error("expected empty render for no notifications")
	}

	var items []notify.Notification
	for _, title := range []string{"one", "two", "three", "four"} {
		items = append(items, notify.Notification{
			Category:        notify.CategoryProgress,
			Title:           title,
			Message:         "msg",
			Severity:        notify.SeverityInfo,
			DisplayDuration: time.Second,
		})
	}
	out := RenderToasts(items, 80)
	if strings.Contains(out, "one") {
		t.Error("oldest toast should be dropped")
	}
	if !strings.Contains(out, "four") {
		t.Error("newest toast missing")
	}

	sticky := RenderToasts([]notify.Notification{{Title: "Time's up", Severity: notify.SeverityDanger}}, 80)
	if !strings.Contains(sticky, "dismiss") {
		t.Error("persistent toast should show a dismiss hint")
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	var fired string
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "start", Action: func() tea.Cmd { fired = "start"; return nil }},
		{Label: "quit", Action: func() tea.Cmd { fired = "quit"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("selected = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up onto disabled item moved selection to %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired != "quit" {
		t.Errorf("fired = %q, want quit", fired)
	}
}
