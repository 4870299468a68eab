package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/hm-insights/internal/types"
)

// Run is one persisted analysis run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	AsOfDate    time.Time  `json:"as_of_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateRun records a new analysis run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, asOf time.Time) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analysis_runs (as_of_date, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		asOf,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks an analysis run as finished.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE analysis_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveResult stores the analysis output for a run as JSON artifacts, one
// per output kind.
func (db *DB) SaveResult(ctx context.Context, runID uuid.UUID, result *types.AnalysisResult) error {
	artifacts := map[string]any{
		"req_rollups":     result.ReqRollups,
		"hm_rollups":      result.HMRollups,
		"pending_actions": result.PendingActions,
	}
	for kind, content := range artifacts {
		if err := db.saveArtifact(ctx, runID, kind, content); err != nil {
			return err
		}
	}
	return nil
}

// saveArtifact upserts one JSON artifact for a run.
func (db *DB) saveArtifact(ctx context.Context, runID uuid.UUID, kind string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact %s: %w", kind, err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO run_artifacts (run_id, kind, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, kind) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, kind, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", kind, err)
	}
	return nil
}

// GetRun retrieves an analysis run by ID, or nil when not found.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, as_of_date, status, created_at, completed_at
		 FROM analysis_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.AsOfDate, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent analysis runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, as_of_date, status, created_at, completed_at
		 FROM analysis_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.AsOfDate, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
