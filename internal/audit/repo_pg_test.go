package audit

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCountActions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)\\s+FROM audit_actions").
		WithArgs(int64(7), 11, 40).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActions(context.Background(), 7, 11, 40)
	if err != nil {
		t.Fatalf("CountActions: %v", err)
	}
	if count != 3 {
		t.Fatalf("CountActions = %d, want 3", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoHasActionNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id\\s+FROM audit_actions").
		WithArgs(int64(7), 16, 63).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	has, err := repo.HasAction(context.Background(), 7, 16, 63)
	if err != nil {
		t.Fatalf("HasAction: %v", err)
	}
	if has {
		t.Fatal("HasAction = true, want false")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	action := Action{
		TramiteID:  7,
		Stage:      2,
		ActionCode: 7,
		UserID:     42,
		Message:    "Corrección 1 enviada",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_actions").
		WithArgs(action.TramiteID, action.Stage, action.ActionCode, action.UserID, action.Message, action.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Append(context.Background(), action); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
