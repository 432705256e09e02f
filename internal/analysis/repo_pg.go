package analysis

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new submission record.
func (r *PGRepo) Create(ctx context.Context, sub Submission) error {
	const query = `
INSERT INTO submissions (
	id, session_id, mode, module_label, locale, state, result_text,
	failure_message, part_count, created_at, completed_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.DB.ExecContext(ctx, query,
		sub.ID,
		sub.SessionID,
		sub.Mode,
		sub.ModuleLabel,
		sub.Locale,
		sub.State,
		sub.ResultText,
		sub.FailureMessage,
		sub.PartCount,
		sub.CreatedAt,
		sub.CompletedAt,
	)
	return err
}

// Complete finalizes a submission record.
func (r *PGRepo) Complete(ctx context.Context, id string, state State, resultText, failureMessage string, partCount int, completedAt time.Time) error {
	const query = `
UPDATE submissions
SET state = $2,
	result_text = NULLIF($3, ''),
	failure_message = NULLIF($4, ''),
	part_count = $5,
	completed_at = $6
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(state), resultText, failureMessage, partCount, completedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a submission by its ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Submission, error) {
	const query = `
SELECT id, session_id, mode, module_label, locale, state, result_text,
	failure_message, part_count, created_at, completed_at
FROM submissions
WHERE id = $1`
	row := r.DB.QueryRowContext(ctx, query, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return sub, err
}

// ListBySession returns submissions for a session ordered newest-first.
func (r *PGRepo) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]Submission, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, session_id, mode, module_label, locale, state, result_text,
	failure_message, part_count, created_at, completed_at
FROM submissions
WHERE session_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]Submission, 0, limit)
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (Submission, error) {
	var (
		sub            Submission
		resultText     sql.NullString
		failureMessage sql.NullString
		completedAt    sql.NullTime
	)
	err := row.Scan(
		&sub.ID,
		&sub.SessionID,
		&sub.Mode,
		&sub.ModuleLabel,
		&sub.Locale,
		&sub.State,
		&resultText,
		&failureMessage,
		&sub.PartCount,
		&sub.CreatedAt,
		&completedAt,
	)
	if err != nil {
		return Submission{}, err
	}
	if resultText.Valid {
		sub.ResultText = &resultText.String
	}
	if failureMessage.Valid {
		sub.FailureMessage = &failureMessage.String
	}
	if completedAt.Valid {
		t := completedAt.Time
		sub.CompletedAt = &t
	}
	return sub, nil
}
