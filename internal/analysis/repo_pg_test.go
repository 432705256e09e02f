package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO submissions").
		WithArgs("sub-1", "sess-1", "full", "", "en", "submitting",
			nil, nil, 0, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), Submission{
		ID:        "sub-1",
		SessionID: "sess-1",
		Mode:      "full",
		Locale:    "en",
		State:     "submitting",
		CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoComplete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	completedAt := time.Now().UTC()

	mock.ExpectExec("UPDATE submissions").
		WithArgs("sub-1", "succeeded", "result", "", 3, completedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(context.Background(), "sub-1", StateSucceeded, "result", "", 3, completedAt); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoCompleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE submissions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Complete(context.Background(), "missing", StateFailed, "", "boom", 0, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	createdAt := time.Now().UTC()
	completedAt := createdAt.Add(3 * time.Second)

	rows := sqlmock.NewRows([]string{
		"id", "session_id", "mode", "module_label", "locale", "state",
		"result_text", "failure_message", "part_count", "created_at", "completed_at",
	}).AddRow("sub-1", "sess-1", "module", "Ore Petrography", "en", "succeeded",
		"chalcopyrite replaces pyrite", nil, 2, createdAt, completedAt)

	mock.ExpectQuery("SELECT (.+) FROM submissions").
		WithArgs("sub-1").
		WillReturnRows(rows)

	sub, err := repo.GetByID(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if sub.ModuleLabel != "Ore Petrography" {
		t.Errorf("module label = %q", sub.ModuleLabel)
	}
	if sub.ResultText == nil || *sub.ResultText != "chalcopyrite replaces pyrite" {
		t.Errorf("result text = %v", sub.ResultText)
	}
	if sub.FailureMessage != nil {
		t.Errorf("failure message = %v, want nil", sub.FailureMessage)
	}
	if sub.CompletedAt == nil || !sub.CompletedAt.Equal(completedAt) {
		t.Errorf("completed at = %v", sub.CompletedAt)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT (.+) FROM submissions").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoListBySession(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "session_id", "mode", "module_label", "locale", "state",
		"result_text", "failure_message", "part_count", "created_at", "completed_at",
	}).
		AddRow("sub-2", "sess-1", "full", "", "en", "failed", nil, "Analysis failed.", 1, now, now).
		AddRow("sub-1", "sess-1", "full", "", "en", "succeeded", "text", nil, 1, now.Add(-time.Minute), now)

	mock.ExpectQuery("SELECT (.+) FROM submissions").
		WithArgs("sess-1", 20, 0).
		WillReturnRows(rows)

	subs, err := repo.ListBySession(context.Background(), "sess-1", 0, 0)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len = %d, want 2", len(subs))
	}
	if subs[0].ID != "sub-2" {
		t.Errorf("first submission = %s, want newest", subs[0].ID)
	}
}
