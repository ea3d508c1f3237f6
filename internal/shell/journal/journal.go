// Package journal provides a local run-history journal for deployment runs.
package journal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nmdo/nmdo/internal/core/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLite Journal
// =============================================================================

// Journal persists deployment runs and their per-module outcomes. It is
// write-mostly bookkeeping: nothing in the pipeline reads it back.
type Journal struct {
	db *sqlx.DB
}

// Open opens (or creates) the journal database at dsn and runs migrations.
func Open(dsn string) (*Journal, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping journal database: %w", err)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// =============================================================================
// Rows
// =============================================================================

type runRow struct {
	ID                string `db:"id"`
	SeedID            string `db:"seed_id"`
	SeedName          string `db:"seed_name"`
	Workspace         string `db:"workspace"`
	Command           string `db:"command"`
	CommandDispatched bool   `db:"command_dispatched"`
	StartedAt         string `db:"started_at"`
	FinishedAt        string `db:"finished_at"`
}

type outcomeRow struct {
	RunID    string `db:"run_id"`
	Position int    `db:"position"`
	ModuleID string `db:"module_id"`
	Filename string `db:"filename"`
	Path     string `db:"path"`
	Status   string `db:"status"`
	Error    string `db:"error"`
}

// RunRecord is a journal entry for one deployment run.
type RunRecord struct {
	ID                string
	SeedID            string
	SeedName          string
	Workspace         string
	Command           string
	CommandDispatched bool
	Deployed          int
	NoContent         int
	Failed            int
	StartedAt         time.Time
	FinishedAt        time.Time
}

// =============================================================================
// Operations
// =============================================================================

// Record writes a completed run and its outcomes in one transaction.
func (j *Journal) Record(ctx context.Context, report *domain.DeploymentReport) error {
	tx, err := j.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin journal transaction: %w", err)
	}
	defer tx.Rollback()

	row := runRow{
		ID:                report.RunID,
		SeedID:            report.SeedID,
		SeedName:          report.SeedName,
		Workspace:         report.Workspace,
		Command:           report.Command,
		CommandDispatched: report.CommandDispatched,
		StartedAt:         report.StartedAt.UTC().Format(time.RFC3339),
		FinishedAt:        report.FinishedAt.UTC().Format(time.RFC3339),
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO runs (id, seed_id, seed_name, workspace, command, command_dispatched, started_at, finished_at)
		VALUES (:id, :seed_id, :seed_name, :workspace, :command, :command_dispatched, :started_at, :finished_at)`,
		row)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, outcome := range report.Outcomes {
		oRow := outcomeRow{
			RunID:    report.RunID,
			Position: i,
			ModuleID: outcome.ModuleID,
			Filename: outcome.Filename,
			Path:     outcome.Path,
			Status:   string(outcome.Status),
		}
		if outcome.Err != nil {
			oRow.Error = outcome.Err.Error()
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO module_outcomes (run_id, position, module_id, filename, path, status, error)
			VALUES (:run_id, :position, :module_id, :filename, :path, :status, :error)`,
			oRow)
		if err != nil {
			return fmt.Errorf("failed to insert module outcome: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal transaction: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, with outcome counts.
func (j *Journal) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []runRow
	err := j.db.SelectContext(ctx, &rows, `
		SELECT id, seed_id, seed_name, workspace, command, command_dispatched, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	records := make([]RunRecord, 0, len(rows))
	for _, row := range rows {
		record := RunRecord{
			ID:                row.ID,
			SeedID:            row.SeedID,
			SeedName:          row.SeedName,
			Workspace:         row.Workspace,
			Command:           row.Command,
			CommandDispatched: row.CommandDispatched,
		}
		record.StartedAt, _ = time.Parse(time.RFC3339, row.StartedAt)
		record.FinishedAt, _ = time.Parse(time.RFC3339, row.FinishedAt)

		if err := j.countOutcomes(ctx, &record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (j *Journal) countOutcomes(ctx context.Context, record *RunRecord) error {
	var counts []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	err := j.db.SelectContext(ctx, &counts, `
		SELECT status, COUNT(*) AS n FROM module_outcomes WHERE run_id = ? GROUP BY status`,
		record.ID)
	if err != nil {
		return fmt.Errorf("failed to count outcomes: %w", err)
	}

	for _, c := range counts {
		switch domain.OutcomeStatus(c.Status) {
		case domain.OutcomeDeployed:
			record.Deployed = c.N
		case domain.OutcomeNoContent:
			record.NoContent = c.N
		case domain.OutcomeFailed:
			record.Failed = c.N
		}
	}
	return nil
}
