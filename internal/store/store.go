// Package store persists score history records.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/scorecard/internal/model"
)

// DefaultListLimit caps ListHistory when the filter sets no limit.
const DefaultListLimit = 50

// HistoryFilter specifies criteria for listing history records.
type HistoryFilter struct {
	SubcomponentID string `json:"subcomponent_id,omitempty"`
	Limit          int    `json:"limit,omitempty"`
	Offset         int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for score history. Records are
// unique per (subcomponent, session); saving again replaces the record.
type Store interface {
	SaveHistory(ctx context.Context, rec *model.HistoryRecord) error
	// GetHistory returns nil, nil when no record exists.
	GetHistory(ctx context.Context, subcomponentID, sessionID string) (*model.HistoryRecord, error)
	ListHistory(ctx context.Context, filter HistoryFilter) ([]model.HistoryRecord, error)

	Migrate(ctx context.Context) error
	Close() error
}

// prepare fills in the id and timestamps before a save.
func prepare(rec *model.HistoryRecord) {
	now := time.Now().UTC()
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Result != nil && rec.OverallScore == 0 {
		rec.OverallScore = rec.Result.OverallScore
	}
}

func limitOf(f HistoryFilter) int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}
