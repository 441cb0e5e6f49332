// Package advisor assembles rainfall and groundwater estimates, feasibility
// scores, the system recommendation and the sized structure into a report.
package advisor

import (
	"fmt"

	"github.com/jonathan/rainwater-advisor/internal/scoring"
	"github.com/jonathan/rainwater-advisor/internal/selector"
	"github.com/jonathan/rainwater-advisor/internal/sizing"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// AnalyzeAndRecommend scores a site and chooses a harvesting system. Invalid
// input is rejected with *types.InvalidInputError before any scoring.
func AnalyzeAndRecommend(in types.SiteInput) (*types.Recommendation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	breakdown := scoring.Score(in)
	feasibility, confidence := scoring.Combine(breakdown)
	choice := selector.Select(in, breakdown)

	return &types.Recommendation{
		SystemType:         choice.Primary,
		Confidence:         confidence,
		Reasoning:          choice.Reasoning,
		AlternativeOptions: choice.Alternatives,
		FeasibilityScore:   feasibility,
		ScoreBreakdown:     breakdown,
	}, nil
}

// GenerateStructureSpecs sizes and prices the structure for an archetype.
func GenerateStructureSpecs(in types.SiteInput, archetype types.SystemArchetype) (*types.StructureSpecs, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !archetype.Valid() {
		return nil, &types.InvalidInputError{Fields: []types.FieldError{{
			Field:   "system_type",
			Message: fmt.Sprintf("unknown system type %q", archetype),
		}}}
	}

	specs := sizing.Generate(in, archetype)
	return &specs, nil
}
