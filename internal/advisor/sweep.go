package advisor

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Sweepable parameters
const (
	ParamRoofArea         = "roof_area"
	ParamRainfall         = "rainfall"
	ParamSpace            = "space"
	ParamDwellers         = "dwellers"
	ParamGroundwaterDepth = "groundwater_depth"
)

const maxSweepWorkers = 8

// SweepRow is the outcome for one perturbed value.
type SweepRow struct {
	Value            float64               `json:"value"`
	SystemType       types.SystemArchetype `json:"system_type,omitempty"`
	FeasibilityScore int                   `json:"feasibility_score"`
	Confidence       int                   `json:"confidence"`
	EstimatedCost    int                   `json:"estimated_cost"`
	Error            string                `json:"error,omitempty"`
}

// Sweep re-evaluates base with one parameter set to each of values, in
// parallel. Rows come back in the order of values; invalid perturbations
// are reported on their row rather than failing the sweep.
func Sweep(ctx context.Context, base types.SiteInput, param string, values []float64) ([]SweepRow, error) {
	if _, err := apply(base, param, 0); err != nil {
		return nil, err
	}

	rows := make([]SweepRow, len(values))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxSweepWorkers)

	for i, v := range values {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			rows[i] = evaluate(base, param, v)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep interrupted: %w", err)
	}
	return rows, nil
}

func evaluate(base types.SiteInput, param string, v float64) SweepRow {
	row := SweepRow{Value: v}

	in, err := apply(base, param, v)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	rec, err := AnalyzeAndRecommend(in)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	specs, err := GenerateStructureSpecs(in, rec.SystemType)
	if err != nil {
		row.Error = err.Error()
		return row
	}

	row.SystemType = rec.SystemType
	row.FeasibilityScore = rec.FeasibilityScore
	row.Confidence = rec.Confidence
	row.EstimatedCost = specs.EstimatedCost
	return row
}

func apply(in types.SiteInput, param string, v float64) (types.SiteInput, error) {
	switch param {
	case ParamRoofArea:
		in.RoofAreaM2 = v
	case ParamRainfall:
		in.AnnualRainfallMm = v
	case ParamSpace:
		in.AvailableSpaceM2 = v
	case ParamDwellers:
		if v != math.Trunc(v) {
			return in, paramError("value", fmt.Sprintf("dwellers must be a whole number, got %v", v))
		}
		in.NumDwellers = int(v)
	case ParamGroundwaterDepth:
		in.GroundwaterDepthM = v
	default:
		return in, paramError("param", fmt.Sprintf("unknown sweep parameter %q", param))
	}
	return in, nil
}

func paramError(field, message string) error {
	return &types.InvalidInputError{Fields: []types.FieldError{{Field: field, Message: message}}}
}
