package metadata

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSupersedeRunsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE metadata_snapshots").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("INSERT INTO metadata_snapshots").
		WithArgs(int64(9), 11, "title", "abstract", "kw", 1500.0, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	mock.ExpectCommit()

	id, err := repo.Supersede(context.Background(), Snapshot{
		TramiteID: 9,
		Stage:     11,
		Title:     "title",
		Abstract:  "abstract",
		Keywords:  "kw",
		Budget:    1500.0,
	})
	if err != nil {
		t.Fatalf("Supersede: %v", err)
	}
	if id != 42 {
		t.Fatalf("Supersede id = %d, want 42", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSupersedeRollsBackOnInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE metadata_snapshots").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO metadata_snapshots").
		WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	if _, err := repo.Supersede(context.Background(), Snapshot{TramiteID: 9, Stage: 2}); err == nil {
		t.Fatal("expected error from failed insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
