package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// ChoiceList is an option selector for choice and true/false questions.
// The cursor moves freely; Chosen is the recorded answer, -1 when none.
type ChoiceList struct {
	Options []string
	Cursor  int
	Chosen  int
}

// NewChoiceList creates a choice list with the cursor on the chosen option,
// or on the first option when chosen is -1.
func NewChoiceList(options []string, chosen int) ChoiceList {
	cursor := chosen
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}
	return ChoiceList{Options: options, Cursor: cursor, Chosen: chosen}
}

// Update moves the cursor. It returns the index to record, or -1 when the
// key did not pick an option. Enter picks the cursor; digits pick directly.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, int) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, -1
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
		return c, -1
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
		return c, -1
	case "enter":
		c.Chosen = c.Cursor
		return c, c.Cursor
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(c.Options) {
			c.Cursor = i
			c.Chosen = i
			return c, i
		}
	}
	return c, -1
}

// View renders the options, one per line.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == c.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt)

		style := theme.Unselected
		switch {
		case i == c.Chosen:
			style = theme.Chosen
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
