// Package notify holds transient notifications shown over the exam and the
// inactivity detector that nudges an idle examinee.
package notify

import "time"

// Category identifies why a notification was raised.
type Category string

const (
	CategoryAchievement Category = "achievement"
	CategoryProgress    Category = "progress"
	CategoryMilestone   Category = "milestone"
	CategoryImprovement Category = "improvement"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{CategoryAchievement, CategoryProgress, CategoryMilestone, CategoryImprovement}
}

// Icon returns the display icon for the category.
func (c Category) Icon() string {
	switch c {
	case CategoryAchievement:
		return "🏆"
	case CategoryProgress:
		return "📈"
	case CategoryMilestone:
		return "⏱"
	case CategoryImprovement:
		return "⚡"
	default:
		return "•"
	}
}

// Severity is the color tag a renderer maps to its palette.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notification is a short message shown to the examinee.
type Notification struct {
	ID       string
	Category Category
	Title    string
	Message  string
	Severity Severity

	// DisplayDuration is how long the notification stays up. Zero means
	// it stays until dismissed.
	DisplayDuration time.Duration

	CreatedAt time.Time
}

// DisplayDurationMs returns DisplayDuration in milliseconds.
func (n Notification) DisplayDurationMs() int64 {
	return n.DisplayDuration.Milliseconds()
}

// ExpiresAt returns when the notification expires, and false if it never does.
func (n Notification) ExpiresAt() (time.Time, bool) {
	if n.DisplayDuration <= 0 {
		return time.Time{}, false
	}
	return n.CreatedAt.Add(n.DisplayDuration), true
}
