package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS assessments (
	id                TEXT PRIMARY KEY,
	created_at_unix   INTEGER NOT NULL,
	location          TEXT NOT NULL DEFAULT '',
	system_type       TEXT NOT NULL,
	feasibility_score INTEGER NOT NULL,
	estimated_cost    INTEGER NOT NULL,
	document          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at_unix DESC);
`

// SQLiteStore keeps assessments in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) a SQLite database at path. Use ":memory:"
// for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// single writer; also keeps ":memory:" on one connection
	sqlDB.SetMaxOpenConns(1)

	if _, err := sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Close closes the database
func (s *SQLiteStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// SaveAssessment inserts or replaces an assessment
func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *types.Assessment) error {
	doc, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}

	sum := summaryOf(a)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, created_at_unix, location, system_type, feasibility_score, estimated_cost, document)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   location = excluded.location, system_type = excluded.system_type,
		   feasibility_score = excluded.feasibility_score, estimated_cost = excluded.estimated_cost,
		   document = excluded.document`,
		sum.ID.String(), sum.CreatedAt.UnixNano(), sum.Location, string(sum.SystemType),
		sum.FeasibilityScore, sum.EstimatedCost, string(doc),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment %s: %w", a.ID, err)
	}
	return nil
}

// GetAssessment retrieves an assessment by ID
func (s *SQLiteStore) GetAssessment(ctx context.Context, id uuid.UUID) (*types.Assessment, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM assessments WHERE id = ?`, id.String(),
	).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	var a types.Assessment
	if err := json.Unmarshal([]byte(doc), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assessment: %w", err)
	}
	return &a, nil
}

// ListAssessments returns summaries, newest first
func (s *SQLiteStore) ListAssessments(ctx context.Context, limit, offset int) ([]AssessmentSummary, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at_unix, location, system_type, feasibility_score, estimated_cost
		 FROM assessments ORDER BY created_at_unix DESC, id LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	summaries := []AssessmentSummary{}
	for rows.Next() {
		var (
			sum        AssessmentSummary
			id         string
			createdAt  int64
			systemType string
		)
		if err := rows.Scan(&id, &createdAt, &sum.Location, &systemType, &sum.FeasibilityScore, &sum.EstimatedCost); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if sum.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid assessment id %q: %w", id, err)
		}
		sum.CreatedAt = time.Unix(0, createdAt).UTC()
		sum.SystemType = types.SystemArchetype(systemType)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assessments: %w", err)
	}
	return summaries, nil
}

// DeleteAssessment removes an assessment
func (s *SQLiteStore) DeleteAssessment(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id.String())
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return n > 0, nil
}
