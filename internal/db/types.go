package db

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Default and maximum page sizes for ListAssessments
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// AssessmentSummary is the listing view of a stored assessment.
type AssessmentSummary struct {
	ID               uuid.UUID             `json:"id"`
	CreatedAt        time.Time             `json:"created_at"`
	Location         string                `json:"location"`
	SystemType       types.SystemArchetype `json:"system_type"`
	FeasibilityScore int                   `json:"feasibility_score"`
	EstimatedCost    int                   `json:"estimated_cost"`
}

// Store persists assessments. Get returns (nil, nil) when the ID is unknown
// and Delete reports whether a row was removed.
type Store interface {
	SaveAssessment(ctx context.Context, a *types.Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*types.Assessment, error)
	ListAssessments(ctx context.Context, limit, offset int) ([]AssessmentSummary, error)
	DeleteAssessment(ctx context.Context, id uuid.UUID) (bool, error)
	Close()
}

func summaryOf(a *types.Assessment) AssessmentSummary {
	return AssessmentSummary{
		ID:               a.ID,
		CreatedAt:        a.CreatedAt,
		Location:         a.Input.Location,
		SystemType:       a.Recommendation.SystemType,
		FeasibilityScore: a.Recommendation.FeasibilityScore,
		EstimatedCost:    a.Structure.EstimatedCost,
	}
}

// clampPage normalizes pagination arguments.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
