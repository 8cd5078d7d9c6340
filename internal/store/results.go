package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/examiz/internal/exam"
)

type resultRepo struct {
	db *sql.DB
}

var _ exam.Reporter = (*Store)(nil)

// Report saves a submitted result. It lets a Store act as a session's reporter.
func (s *Store) Report(ctx context.Context, r exam.Result) error {
	return s.ResultRepo().Save(ctx, r)
}

func (r *resultRepo) Save(ctx context.Context, res exam.Result) error {
	data := ResultData{
		Answers:    res.Answers,
		Marked:     res.Marked,
		Strengths:  res.Performance.Strengths,
		Weaknesses: res.Performance.Weaknesses,
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal result data: %w", err)
	}

	perf := res.Performance
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO results (session_id, title, submitted_at, score, recommended_tier,
			answered, total, elapsed_seconds, avg_seconds, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.SessionID, res.Title, res.SubmittedAt.UTC().UnixNano(),
		perf.CompletionScorePercent, string(perf.RecommendedTier),
		perf.Answered, perf.Total, perf.ElapsedSeconds, perf.AverageSecondsPerQuestion,
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

const resultColumns = `id, session_id, title, submitted_at, score, recommended_tier,
	answered, total, elapsed_seconds, avg_seconds, data`

func (r *resultRepo) Recent(ctx context.Context, limit int) ([]ResultRecord, error) {
	query := `SELECT ` + resultColumns + ` FROM results ORDER BY submitted_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *resultRepo) BySession(ctx context.Context, sessionID string) (*ResultRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM results WHERE session_id = ?`, sessionID)
	rec, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (ResultRecord, error) {
	var (
		rec       ResultRecord
		submitted int64
		tier      string
		raw       string
	)
	err := s.Scan(&rec.ID, &rec.SessionID, &rec.Title, &submitted, &rec.Score, &tier,
		&rec.Answered, &rec.Total, &rec.ElapsedSeconds, &rec.AvgSeconds, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rec, err
		}
		return rec, fmt.Errorf("scan result: %w", err)
	}
	rec.SubmittedAt = time.Unix(0, submitted).UTC()
	rec.RecommendedTier = exam.Tier(tier)
	if err := json.Unmarshal([]byte(raw), &rec.Data); err != nil {
		return rec, fmt.Errorf("unmarshal result data: %w", err)
	}
	return rec, nil
}
