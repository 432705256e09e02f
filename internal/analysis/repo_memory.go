package analysis

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores submission records in memory and is safe for concurrent
// use. It is the default when no database is configured.
type MemoryRepo struct {
	mu        sync.RWMutex
	byID      map[string]Submission
	bySession map[string][]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:      make(map[string]Submission),
		bySession: make(map[string][]string),
	}
}

// Create stores the submission record.
func (r *MemoryRepo) Create(ctx context.Context, sub Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[sub.ID] = sub
	r.bySession[sub.SessionID] = append(r.bySession[sub.SessionID], sub.ID)
	return nil
}

// Complete finalizes a submission record.
func (r *MemoryRepo) Complete(ctx context.Context, id string, state State, resultText, failureMessage string, partCount int, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	sub.State = string(state)
	sub.PartCount = partCount
	sub.CompletedAt = &completedAt
	if resultText != "" {
		sub.ResultText = &resultText
	}
	if failureMessage != "" {
		sub.FailureMessage = &failureMessage
	}
	r.byID[id] = sub
	return nil
}

// GetByID returns a submission by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Submission, error) {
	if err := ctx.Err(); err != nil {
		return Submission{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.byID[id]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return sub, nil
}

// ListBySession returns submissions for a session ordered newest-first.
func (r *MemoryRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.bySession[sessionID]
	subs := make([]Submission, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, r.byID[id])
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(subs) {
		return []Submission{}, nil
	}
	subs = subs[offset:]
	if limit > 0 && limit < len(subs) {
		subs = subs[:limit]
	}
	return subs, nil
}
