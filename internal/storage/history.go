package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"wqa/internal/domain"
)

// History records run summaries in a MySQL table so CI runs can be compared
// over time. It is optional; an empty DSN disables it.
type History struct {
	dsn string
}

// NewHistory creates a History sink for the given DSN. The DSN needs
// parseTime=true so created_at scans into time.Time.
func NewHistory(dsn string) *History {
	return &History{dsn: dsn}
}

// RunRecord is one stored run summary.
type RunRecord struct {
	ID          int64
	Environment string
	Engines     string
	Total       int
	Passed      int
	Failed      int
	Errored     int
	Skipped     int
	Duration    float64
	Workers     int
	CreatedAt   time.Time
}

const createRunsTable = `
CREATE TABLE IF NOT EXISTS qa_runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	environment VARCHAR(64) NOT NULL,
	engines VARCHAR(128) NOT NULL DEFAULT '',
	total_cases INT NOT NULL,
	passed INT NOT NULL,
	failed INT NOT NULL,
	errored INT NOT NULL,
	skipped INT NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	workers INT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

func (h *History) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("mysql", h.dsn)
	if err != nil {
		return nil, fmt.Errorf("connect history database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure history table: %w", err)
	}
	return db, nil
}

// Record stores the run summary.
func (h *History) Record(ctx context.Context, output *domain.RunOutput) error {
	db, err := h.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	meta := output.Meta
	_, err = db.ExecContext(ctx,
		`INSERT INTO qa_runs
		(environment, engines, total_cases, passed, failed, errored, skipped, duration_seconds, workers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.Environment, meta.Engines, meta.TotalCases, meta.Passed, meta.Failed,
		meta.Errored, meta.Skipped, meta.DurationSeconds, meta.Workers)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}
	return nil
}

// Recent returns the most recent run summaries, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]RunRecord, error) {
	db, err := h.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if limit <= 0 {
		limit = 10
	}
	rows, err := db.QueryContext(ctx,
		`SELECT id, environment, engines, total_cases, passed, failed, errored, skipped,
		duration_seconds, workers, created_at
		FROM qa_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Environment, &r.Engines, &r.Total, &r.Passed,
			&r.Failed, &r.Errored, &r.Skipped, &r.Duration, &r.Workers, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
