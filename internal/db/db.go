// Package db provides PostgreSQL and SQLite storage for assessments.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS assessments (
	id                UUID PRIMARY KEY,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	location          TEXT NOT NULL DEFAULT '',
	system_type       TEXT NOT NULL,
	feasibility_score INTEGER NOT NULL,
	estimated_cost    BIGINT NOT NULL,
	document          JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at DESC);
`

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

var _ Store = (*DB)(nil)

// Connect establishes a connection pool to the database and ensures the
// assessments table exists.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveAssessment inserts or replaces an assessment
func (db *DB) SaveAssessment(ctx context.Context, a *types.Assessment) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	s := summaryOf(a)
	_, err = db.pool.Exec(ctx,
		`INSERT INTO assessments (id, created_at, location, system_type, feasibility_score, estimated_cost, document)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   location = $3, system_type = $4, feasibility_score = $5, estimated_cost = $6, document = $7`,
		s.ID, s.CreatedAt, s.Location, string(s.SystemType), s.FeasibilityScore, s.EstimatedCost, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", a.ID, err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	var doc []byte
	err := db.pool.QueryRow(ctx,
		`SELECT document FROM assessments WHERE id = $1`, id,
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var a types.Assessment
	if err := json.Unmarshal(doc, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}

// ListAssessments returns summaries, newest first
func (db *DB) ListAssessments(ctx context.Context, limit, offset int) ([]AssessmentSummary, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT id, created_at, location, system_type, feasibility_score, estimated_cost
		 FROM assessments ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	summaries := []AssessmentSummary{}
	for rows.Next() {
		var s AssessmentSummary
		var systemType string
		if err := rows.Scan(&s.ID, &s.CreatedAt, &s.Location, &systemType, &s.FeasibilityScore, &s.EstimatedCost); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		s.SystemType = types.SystemArchetype(systemType)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return summaries, nil
}

// DeleteAssessment removes an assessment
func (db *DB) DeleteAssessment(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
