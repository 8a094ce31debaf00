package observations

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

var observationColumns = []string{"id", "tramite_id", "stage", "user_id", "role_id", "approved", "remark", "created_at"}

func TestPGRepoListByStage(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer database.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE tramite_id = $1 AND stage = $2")).
		WithArgs(int64(11), 3).
		WillReturnRows(sqlmock.NewRows(observationColumns).
			AddRow(int64(2), int64(11), 3, int64(5), int64(2), false, "corregir", now).
			AddRow(int64(1), int64(11), 3, int64(6), int64(2), true, nil, now.Add(-time.Hour)))

	repo := &PGRepo{DB: database}
	obs, err := repo.ListByStage(context.Background(), 11, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("observations = %d, want 2", len(obs))
	}
	if obs[0].Remark != "corregir" {
		t.Fatalf("remark = %q", obs[0].Remark)
	}
	if obs[1].Remark != "" {
		t.Fatalf("NULL remark mapped to %q", obs[1].Remark)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListByStagesBuildsPlaceholders(t *testing.T) {
	database, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer database.Close()

	mock.ExpectQuery(regexp.QuoteMeta("stage IN ($2, $3, $4)")).
		WithArgs(int64(11), 2, 3, 4).
		WillReturnRows(sqlmock.NewRows(observationColumns))

	repo := &PGRepo{DB: database}
	obs, err := repo.ListByStages(context.Background(), 11, []int{2, 3, 4})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(obs) != 0 {
		t.Fatalf("observations = %d, want 0", len(obs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListByStagesEmptyAllowedList(t *testing.T) {
	repo := &PGRepo{}
	obs, err := repo.ListByStages(context.Background(), 11, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(obs) != 0 {
		t.Fatalf("observations = %d, want 0", len(obs))
	}
}
