package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// The trámite schema and its file-type seed data ship inside the binary so
// new environments come up without a separate migration step.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to date via goose. A nil database is a
// no-op: dev mode runs on in-memory repositories without Postgres.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, database, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
