package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/app"
	"github.com/abhisek/examiz/internal/config"
	"github.com/abhisek/examiz/internal/exam"
	"github.com/abhisek/examiz/internal/logger"
	"github.com/abhisek/examiz/internal/milestones"
	"github.com/abhisek/examiz/internal/notify"
	"github.com/abhisek/examiz/internal/questionset"
	"github.com/abhisek/examiz/internal/schedule"
	"github.com/abhisek/examiz/internal/screen"
	examscreen "github.com/abhisek/examiz/internal/screens/exam"
	"github.com/abhisek/examiz/internal/screens/history"
	"github.com/abhisek/examiz/internal/screens/summary"
	"github.com/abhisek/examiz/internal/screens/terms"
	"github.com/abhisek/examiz/internal/store"
)

var takeCmd = &cobra.Command{
	Use:   "take <questions.json>",
	Short: "Take a timed exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTake(cmd, args[0])
	},
}

func init() {
	addTakeFlags(takeCmd)
}

func addTakeFlags(cmd *cobra.Command) {
	cmd.Flags().Int("duration", 0, "Exam length in seconds (overrides the question set and EXAMIZ_DURATION)")
	cmd.Flags().Bool("guest", false, "Run without sign-in; exam controls stay locked")
	cmd.Flags().Bool("no-save", false, "Do not record the result in the history database")
}

// activitySignals is the buffered channel between key presses and the
// inactivity detector. Sends never block the UI.
type activitySignals chan struct{}

func (a activitySignals) touch() {
	select {
	case a <- struct{}{}:
	default:
	}
}

// runTake loads the question set, builds the session and its collaborators,
// and launches the TUI.
func runTake(cmd *cobra.Command, path string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	var logOut io.Writer
	if logFile != nil {
		defer logFile.Close()
		logOut = logFile
	}
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, logOut)

	loaded, err := questionset.LoadFile(path)
	if err != nil {
		return err
	}
	duration := cfg.DurationSeconds
	if loaded.DurationSeconds > 0 {
		duration = loaded.DurationSeconds
	}
	if cmd.Flags().Changed("duration") {
		duration, _ = cmd.Flags().GetInt("duration")
	}

	sched := schedule.NewReal()
	notes := notify.NewStore(sched,
		notify.WithIDGenerator(notify.UUIDs()),
		notify.WithStoreLogger(log),
	)
	defer notes.Close()

	detector := notify.NewDetector(sched, notes, notify.DetectorConfig{
		IdleThreshold: cfg.InactivityThreshold(),
		PollInterval:  cfg.InactivityPoll(),
		NudgeDuration: cfg.NudgeDuration(),
	}, log)

	opts := []exam.Option{
		exam.WithScheduler(sched),
		exam.WithLogger(log),
		exam.WithObserver(milestones.NewAnnouncer(notes, log)),
		exam.WithWatchdog(detector),
	}

	var st *store.Store
	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		dbPath, err := resolveDBPath(cmd, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err = store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		opts = append(opts, exam.WithReporter(st))
		log.Info().Str("db", dbPath).Msg("results store opened")
	}

	sess, err := exam.NewSession(loaded.Set, duration, opts...)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	signals := make(activitySignals, 16)
	go detector.Listen(ctx, signals)

	log.Info().
		Str("session", sess.ID()).
		Str("title", loaded.Set.Title).
		Int("questions", loaded.Set.Len()).
		Int("duration_seconds", duration).
		Bool("authenticated", cfg.Authenticated).
		Msg("exam ready")

	initial := buildScreens(sess, exam.ControlsFor(cfg.Authenticated), st, log)
	return app.Run(app.NewModel(initial, notes, signals.touch))
}

// buildScreens chains terms -> exam -> summary, with history reachable from
// the summary when results are being saved.
func buildScreens(sess *exam.Session, controls exam.Controls, st *store.Store, log zerolog.Logger) screen.Screen {
	var historyFn func() screen.Screen
	if st != nil {
		historyFn = func() screen.Screen { return history.New(st.ResultRepo()) }
	}
	onSubmit := func(result exam.Result, err error) screen.Screen {
		return summary.New(result, err, historyFn)
	}
	return terms.New(sess, controls, func() screen.Screen {
		return examscreen.New(sess, controls, onSubmit, log)
	})
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("log-file"); p != "" {
		cfg.LogFile = p
	}
	if cmd.Flags().Lookup("guest") != nil {
		if guest, _ := cmd.Flags().GetBool("guest"); guest {
			cfg.Authenticated = false
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
