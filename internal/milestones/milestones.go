// Package milestones turns session events into notifications: tiers
// completed, completion thresholds crossed, a better recommended tier, time
// running out, and the exam being finished or submitted.
package milestones

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/notify"
)

// Display durations per notification kind. Zero persists until dismissed.
const (
	TierCompleteDuration = 5 * time.Second
	ProgressDuration     = 4 * time.Second
	ImprovementDuration  = 5 * time.Second
	FinishedDuration     = 6 * time.Second
	TimeExpiredDuration  = 0
	SubmittedDuration    = 0
)

// ProgressSteps are the completion percentages that raise a progress notification.
var ProgressSteps = []float64{25, 50, 75, 100}

// Announcer observes a session and pushes notifications straight into the
// store, bypassing the inactivity gate. Each milestone fires at most once
// per session.
type Announcer struct {
	mu    sync.Mutex
	store *notify.Store
	log   zerolog.Logger

	tiersAnnounced map[exam.Tier]bool
	stepsReached   int
}

var _ exam.Observer = (*Announcer)(nil)

// NewAnnouncer creates an Announcer pushing into store.
func NewAnnouncer(store *notify.Store, log zerolog.Logger) *Announcer {
	return &Announcer{
		store:          store,
		log:            log.With().Str("component", "milestones").Logger(),
		tiersAnnounced: make(map[exam.Tier]bool),
	}
}

// PerformanceChanged announces newly completed tiers, progress steps and
// recommendation upgrades.
func (a *Announcer) PerformanceChanged(prev, next exam.Performance) {
	var pending []notify.Notification

	a.mu.Lock()
	for _, tier := range next.Strengths {
		if a.tiersAnnounced[tier] || prev.IsStrength(tier) {
			continue
		}
		a.tiersAnnounced[tier] = true
		pending = append(pending, tierComplete(tier))
	}

	for a.stepsReached < len(ProgressSteps) && next.CompletionScorePercent >= ProgressSteps[a.stepsReached] {
		step := ProgressSteps[a.stepsReached]
		a.stepsReached++
		if prev.CompletionScorePercent >= step {
			continue
		}
		pending = append(pending, progress(step, next))
	}
	a.mu.Unlock()

	if next.Answered > 0 && next.RecommendedTier.Rank() > prev.RecommendedTier.Rank() {
		pending = append(pending, improvement(next.RecommendedTier))
	}

	for _, n := range pending {
		pushed := a.store.Push(n)
		a.log.Debug().Str("id", pushed.ID).Str("title", pushed.Title).Msg("Milestone announced")
	}
}

// PhaseChanged announces the end of the active period and submission.
func (a *Announcer) PhaseChanged(change exam.PhaseChange) {
	var n notify.Notification
	switch change.Reason {
	case exam.ReasonTimeExpired:
		n = notify.Notification{
			Category:        notify.CategoryMilestone,
			Title:           "Time's up",
			Message:         fmt.Sprintf("Answered %d of %d. Review your answers, then submit.", change.State.Performance.Answered, change.State.Total),
			Severity:        notify.SeverityDanger,
			DisplayDuration: TimeExpiredDuration,
		}
	case exam.ReasonFinished:
		n = notify.Notification{
			Category:        notify.CategoryMilestone,
			Title:           "Exam finished",
			Message:         fmt.Sprintf("Finished with %s left. Review and submit when ready.", formatRemaining(change.State.TimeRemaining())),
			Severity:        notify.SeverityInfo,
			DisplayDuration: FinishedDuration,
		}
	case exam.ReasonSubmitted:
		perf := change.State.Performance
		n = notify.Notification{
			Category:        notify.CategoryAchievement,
			Title:           "Exam submitted",
			Message:         fmt.Sprintf("%.0f%% complete. Suggested next level: %s.", perf.CompletionScorePercent, perf.RecommendedTier.DisplayName()),
			Severity:        notify.SeveritySuccess,
			DisplayDuration: SubmittedDuration,
		}
	default:
		return
	}
	pushed := a.store.Push(n)
	a.log.Debug().Str("id", pushed.ID).Str("reason", string(change.Reason)).Msg("Phase announced")
}

func tierComplete(tier exam.Tier) notify.Notification {
	return notify.Notification{
		Category:        notify.CategoryAchievement,
		Title:           tier.DisplayName() + " tier complete",
		Message:         fmt.Sprintf("Every %s question has an answer.", tier),
		Severity:        notify.SeveritySuccess,
		DisplayDuration: TierCompleteDuration,
	}
}

func progress(step float64, perf exam.Performance) notify.Notification {
	title := fmt.Sprintf("%.0f%% answered", step)
	if step >= 100 {
		title = "All questions answered"
	}
	return notify.Notification{
		Category:        notify.CategoryProgress,
		Title:           title,
		Message:         fmt.Sprintf("%d of %d questions answered.", perf.Answered, perf.Total),
		Severity:        notify.SeverityInfo,
		DisplayDuration: ProgressDuration,
	}
}

func improvement(tier exam.Tier) notify.Notification {
	return notify.Notification{
		Category:        notify.CategoryImprovement,
		Title:           "Level up",
		Message:         fmt.Sprintf("Suggested next level is now %s.", tier.DisplayName()),
		Severity:        notify.SeveritySuccess,
		DisplayDuration: ImprovementDuration,
	}
}

func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
