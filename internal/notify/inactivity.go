package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/examiz/internal/schedule"
)

// Inactivity defaults.
const (
	DefaultIdleThreshold = 5 * time.Minute
	DefaultPollInterval  = 60 * time.Second
	DefaultNudgeDuration = 10 * time.Second
)

// DetectorConfig tunes the inactivity detector.
type DetectorConfig struct {
	IdleThreshold time.Duration
	PollInterval  time.Duration
	NudgeDuration time.Duration
}

// DefaultDetectorConfig returns the standard five-minute idle nudge.
func DefaultDetectorConfig() DetectorConfig {
	return DetectorConfig{
		IdleThreshold: DefaultIdleThreshold,
		PollInterval:  DefaultPollInterval,
		NudgeDuration: DefaultNudgeDuration,
	}
}

// Detector watches activity signals and, while running, polls for idleness.
// A poll that finds the examinee idle past the threshold with no
// notification showing pushes one "still there?" milestone notification.
//
// The detector satisfies exam.Watchdog, so the session starts and stops
// the poll together with its countdown.
type Detector struct {
	mu    sync.Mutex
	sched schedule.Scheduler
	store *Store
	cfg   DetectorConfig
	log   zerolog.Logger

	lastActivity time.Time
	poll         schedule.Task
}

// NewDetector creates a stopped detector. The activity clock starts now.
func NewDetector(sched schedule.Scheduler, store *Store, cfg DetectorConfig, log zerolog.Logger) *Detector {
	return &Detector{
		sched:        sched,
		store:        store,
		cfg:          cfg,
		log:          log.With().Str("component", "inactivity").Logger(),
		lastActivity: sched.Now(),
	}
}

// Touch records that the examinee did something.
func (d *Detector) Touch() {
	now := d.sched.Now()
	d.mu.Lock()
	d.lastActivity = now
	d.mu.Unlock()
}

// Listen calls Touch for every signal until ctx is done or signals closes.
func (d *Detector) Listen(ctx context.Context, signals <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-signals:
			if !ok {
				return
			}
			d.Touch()
		}
	}
}

// LastActivity returns the time of the most recent activity signal.
func (d *Detector) LastActivity() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastActivity
}

// Start begins polling. The idle clock restarts so time spent before the
// session went active does not count.
func (d *Detector) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.poll != nil {
		return
	}
	d.lastActivity = d.sched.Now()
	var task schedule.Task
	task = d.sched.Every(d.cfg.PollInterval, func() { d.check(task) })
	d.poll = task
	task.Start()
}

// Stop cancels polling. Safe to call when not running.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.poll == nil {
		return
	}
	d.poll.Cancel()
	d.poll = nil
}

// Running reports whether the poll is scheduled.
func (d *Detector) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.poll != nil
}

// Check runs one idle check now and returns the pushed nudge, if any.
func (d *Detector) Check() (Notification, bool) {
	d.mu.Lock()
	idle := d.sched.Now().Sub(d.lastActivity)
	d.mu.Unlock()

	if idle < d.cfg.IdleThreshold || d.store.Len() > 0 {
		return Notification{}, false
	}

	n := d.store.Push(Notification{
		Category:        CategoryMilestone,
		Title:           "Still there?",
		Message:         "You haven't interacted for a while. Your exam timer is still running.",
		Severity:        SeverityWarning,
		DisplayDuration: d.cfg.NudgeDuration,
	})
	d.log.Info().Dur("idle", idle).Str("id", n.ID).Msg("Inactivity nudge")
	return n, true
}

func (d *Detector) check(task schedule.Task) {
	d.mu.Lock()
	current := d.poll == task
	d.mu.Unlock()
	if !current {
		return
	}
	d.Check()
}
