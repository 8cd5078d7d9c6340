package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, calm enough to sit in front of for an hour.
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Chosen = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Marked = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// SeverityColor maps a severity tag (info, success, warning, danger) to a
// palette color. Unknown tags render as plain text.
func SeverityColor(severity string) color.Color {
	switch severity {
	case "info":
		return Secondary
	case "success":
		return Success
	case "warning":
		return Warning
	case "danger":
		return Error
	default:
		return Text
	}
}

// TimerColor returns the countdown color for the given seconds remaining.
func TimerColor(remaining int) color.Color {
	switch {
	case remaining <= 60:
		return Error
	case remaining <= 300:
		return Warning
	default:
		return Text
	}
}

// CompletionColor colors a completion percentage by recommended-level band:
// above 80 advanced, above 60 intermediate, otherwise beginner.
func CompletionColor(percent float64) color.Color {
	switch {
	case percent > 80:
		return Success
	case percent > 60:
		return Secondary
	default:
		return Accent
	}
}
