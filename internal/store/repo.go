package store

import (
	"context"
	"time"

	"github.com/abhisek/examiz/internal/exam"
)

// ResultRecord is one persisted exam submission.
type ResultRecord struct {
	ID              int64
	SessionID       string
	Title           string
	SubmittedAt     time.Time
	Score           float64
	RecommendedTier exam.Tier
	Answered        int
	Total           int
	ElapsedSeconds  int
	AvgSeconds      float64
	Data            ResultData
}

// ResultData is the JSON payload stored alongside the summary columns.
type ResultData struct {
	Answers    map[string]exam.Answer `json:"answers"`
	Marked     []string               `json:"marked,omitempty"`
	Strengths  []exam.Tier            `json:"strengths,omitempty"`
	Weaknesses []exam.Tier            `json:"weaknesses,omitempty"`
}

// ResultRepo persists submitted exam results.
type ResultRepo interface {
	// Save stores a submitted result. Saving the same session twice fails.
	Save(ctx context.Context, r exam.Result) error

	// Recent returns up to limit results, newest first. limit <= 0 returns all.
	Recent(ctx context.Context, limit int) ([]ResultRecord, error)

	// BySession returns the result for a session, or nil if none exists.
	BySession(ctx context.Context, sessionID string) (*ResultRecord, error)
}
