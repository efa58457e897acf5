package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/brewdoctor/internal/diagnose"
)

// RecordRun stores one completed diagnostic pass and its advisories in a
// single transaction. Returns the new run's ID.
func (s *Store) RecordRun(startedAt time.Time, duration time.Duration, checksRun int, results []diagnose.Result) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, duration_ms, checks_run, advisory_count) VALUES (?, ?, ?, ?)`,
		startedAt.Format(time.RFC3339),
		duration.Milliseconds(),
		checksRun,
		len(results),
	)
	if err != nil {
		return 0, wrapNotInitialized(fmt.Errorf("failed to insert run: %w", err))
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for i, r := range results {
		_, err := tx.Exec(
			`INSERT INTO advisories (run_id, position, check_name, message) VALUES (?, ?, ?, ?)`,
			runID, i, r.Name, r.Message,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert advisory %s: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns all runs.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, started_at, duration_ms, checks_run, advisory_count
		FROM runs
		ORDER BY id DESC
	`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, wrapNotInitialized(fmt.Errorf("failed to list runs: %w", err))
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var startedAt string
		var durationMS int64
		if err := rows.Scan(&run.ID, &startedAt, &durationMS, &run.ChecksRun, &run.AdvisoryCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetRun retrieves one run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	var run Run
	var startedAt string
	var durationMS int64
	err := s.db.QueryRow(
		`SELECT id, started_at, duration_ms, checks_run, advisory_count FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &startedAt, &durationMS, &run.ChecksRun, &run.AdvisoryCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, wrapNotInitialized(fmt.Errorf("failed to get run %d: %w", id, err))
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return &run, nil
}

// Advisories returns a run's advisories in their original run order.
func (s *Store) Advisories(runID int64) ([]*Advisory, error) {
	rows, err := s.db.Query(
		`SELECT run_id, position, check_name, message FROM advisories WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, wrapNotInitialized(fmt.Errorf("failed to list advisories: %w", err))
	}
	defer rows.Close()

	var advisories []*Advisory
	for rows.Next() {
		var a Advisory
		if err := rows.Scan(&a.RunID, &a.Position, &a.Check, &a.Message); err != nil {
			return nil, fmt.Errorf("failed to scan advisory: %w", err)
		}
		advisories = append(advisories, &a)
	}
	return advisories, rows.Err()
}
