package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/examiz/internal/exam"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testResult(id string, at time.Time, score float64) exam.Result {
	return exam.Result{
		SessionID: id,
		Title:     "Go basics",
		Answers: map[string]exam.Answer{
			"q1": exam.ChoiceAnswer(2),
			"q2": exam.TextAnswer("gofmt"),
		},
		Marked: []string{"q2"},
		Performance: exam.Performance{
			CompletionScorePercent:    score,
			AverageSecondsPerQuestion: 45,
			Strengths:                 []exam.Tier{exam.TierBeginner},
			Weaknesses:                []exam.Tier{exam.TierAdvanced},
			RecommendedTier:           exam.RecommendTier(score),
			Answered:                  2,
			Total:                     3,
			ElapsedSeconds:            90,
		},
		SubmittedAt: at,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTable(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='results'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if name != "results" {
		t.Errorf("table name = %q, want 'results'", name)
	}
}

func TestReportAndBySession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	if err := s.Report(ctx, testResult("sess-1", at, 66.7)); err != nil {
		t.Fatalf("report: %v", err)
	}

	rec, err := s.ResultRepo().BySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a result")
	}
	if !rec.SubmittedAt.Equal(at) {
		t.Errorf("submitted_at = %v, want %v", rec.SubmittedAt, at)
	}
	if rec.Score != 66.7 {
		t.Errorf("score = %v, want 66.7", rec.Score)
	}
	if rec.RecommendedTier != exam.TierIntermediate {
		t.Errorf("tier = %q, want intermediate", rec.RecommendedTier)
	}
	if rec.Answered != 2 || rec.Total != 3 || rec.ElapsedSeconds != 90 {
		t.Errorf("counts = %d/%d/%d, want 2/3/90", rec.Answered, rec.Total, rec.ElapsedSeconds)
	}
	if got := rec.Data.Answers["q1"]; got != exam.ChoiceAnswer(2) {
		t.Errorf("q1 answer = %+v", got)
	}
	if got := rec.Data.Answers["q2"]; got != exam.TextAnswer("gofmt") {
		t.Errorf("q2 answer = %+v", got)
	}
	if len(rec.Data.Marked) != 1 || rec.Data.Marked[0] != "q2" {
		t.Errorf("marked = %v, want [q2]", rec.Data.Marked)
	}
	if len(rec.Data.Strengths) != 1 || rec.Data.Strengths[0] != exam.TierBeginner {
		t.Errorf("strengths = %v", rec.Data.Strengths)
	}
}

func TestBySessionMissing(t *testing.T) {
	s := openTestStore(t)
	rec, err := s.ResultRepo().BySession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("by session: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil result")
	}
}

func TestSaveDuplicateSessionFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	if err := s.Report(ctx, testResult("dup", at, 50)); err != nil {
		t.Fatalf("first report: %v", err)
	}
	if err := s.Report(ctx, testResult("dup", at, 50)); err == nil {
		t.Fatal("expected error saving the same session twice")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		if err := s.Report(ctx, testResult(id, base.Add(time.Duration(i)*time.Hour), 10)); err != nil {
			t.Fatalf("report %s: %v", id, err)
		}
	}

	all, err := s.ResultRepo().Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	var ids []string
	for _, r := range all {
		ids = append(ids, r.SessionID)
	}
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "b" || ids[2] != "a" {
		t.Errorf("order = %v, want [c b a]", ids)
	}

	limited, err := s.ResultRepo().Recent(ctx, 2)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 2 || limited[0].SessionID != "c" {
		t.Errorf("limited = %d results", len(limited))
	}
}

func TestSessionSubmitPersists(t *testing.T) {
	s := openTestStore(t)
	set, err := exam.NewQuestionSet("persist", []exam.Question{
		{ID: "q1", Kind: exam.KindFreeText},
	})
	if err != nil {
		t.Fatalf("question set: %v", err)
	}
	sess, err := exam.NewSession(set, 60, exam.WithReporter(s), exam.WithSessionID("persist-1"))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer sess.Close()

	if err := sess.Start(true); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := sess.SetAnswer("q1", exam.TextAnswer("done")); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if err := sess.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := sess.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rec, err := s.ResultRepo().BySession(context.Background(), "persist-1")
	if err != nil || rec == nil {
		t.Fatalf("by session: rec=%v err=%v", rec, err)
	}
	if rec.Score != 100 {
		t.Errorf("score = %v, want 100", rec.Score)
	}
}

func TestDefaultDBPathEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("EXAMIZ_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EXAMIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	want := filepath.Join(dir, "examiz", "examiz.db")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
