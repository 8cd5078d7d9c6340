package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// ProgressBar shows how many questions have an answer. The fill color
// follows the completion band, so it changes where the recommended level
// changes.
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewProgressBar creates a progress bar for done of total.
func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Percent returns Done/Total as 0..100.
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label) + "  ")
	}

	pct := p.Percent()
	suffix := fmt.Sprintf("  %d/%d  %.0f%%", p.Done, p.Total, pct)

	barWidth := p.Width - lipgloss.Width(b.String()) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}
	filled := max(0, min(int(float64(barWidth)*pct/100), barWidth))

	b.WriteString(lipgloss.NewStyle().
		Background(theme.CompletionColor(pct)).
		Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Hint.Italic(false).Render(suffix))
	return b.String()
}
