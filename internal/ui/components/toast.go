package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/notify"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// MaxToasts is how many notifications are drawn at once; the newest win.
const MaxToasts = 3

// RenderToasts draws the newest notifications as bordered cards, stacked
// oldest first. It returns "" when there is nothing to show.
func RenderToasts(items []notify.Notification, width int) string {
	if len(items) == 0 {
		return ""
	}
	if len(items) > MaxToasts {
		items = items[len(items)-MaxToasts:]
	}

	cardWidth := min(width-4, 48)
	cards := make([]string, 0, len(items))
	for _, n := range items {
		c := theme.SeverityColor(string(n.Severity))
		title := lipgloss.NewStyle().Foreground(c).Bold(true).
			Render(n.Category.Icon() + " " + n.Title)
		body := lipgloss.NewStyle().Foreground(theme.Text).Render(n.Message)
		if n.DisplayDuration <= 0 {
			body += "\n" + theme.Hint.Render("Ctrl+X to dismiss")
		}
		cards = append(cards, lipgloss.NewStyle().
			Width(cardWidth).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1).
			Render(title+"\n"+body))
	}
	return strings.Join(cards, "\n")
}
