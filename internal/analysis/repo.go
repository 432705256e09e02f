package analysis

import (
	"context"
	"time"
)

// Repo defines persistence operations for submission records.
type Repo interface {
	Create(ctx context.Context, sub Submission) error
	Complete(ctx context.Context, id string, state State, resultText, failureMessage string, partCount int, completedAt time.Time) error
	GetByID(ctx context.Context, id string) (Submission, error)
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]Submission, error)
}
