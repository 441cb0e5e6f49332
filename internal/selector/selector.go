// Package selector chooses a harvesting-system archetype for a scored site.
package selector

import (
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Decision-tree thresholds
const (
	goodGroundwaterScore   = 70
	maxRechargeDepthM      = 20.0
	rechargeSpaceRatio     = 0.2
	ampleSpaceScore        = 80
	tightSpaceScore        = 40
	largeTankRainfallMm    = 1200.0
	hybridRainfallScore    = 80
	hybridRoofScore        = 70
	alternativeOptionCount = 2
)

// Result is the selector's choice for one site.
type Result struct {
	Primary      types.SystemArchetype
	Alternatives []types.SystemArchetype
	Reasoning    []string
}

// Select walks the decision tree top to bottom; the first matching branch
// wins.
func Select(in types.SiteInput, scores types.ScoreBreakdown) Result {
	primary := choose(in, scores)
	return Result{
		Primary:      primary,
		Alternatives: Alternatives(primary),
		Reasoning:    Reasoning(in, scores, primary),
	}
}

func choose(in types.SiteInput, s types.ScoreBreakdown) types.SystemArchetype {
	switch {
	case s.GroundwaterConditions >= goodGroundwaterScore && in.GroundwaterDepthM <= maxRechargeDepthM:
		if in.AvailableSpaceM2 >= rechargeSpaceRatio*in.RoofAreaM2 {
			return types.RechargePitWithStorage
		}
		return types.InjectionWellSystem
	case s.SpaceAvailability >= ampleSpaceScore:
		if in.AnnualRainfallMm >= largeTankRainfallMm {
			return types.LargeUndergroundTank
		}
		return types.ModularTankSystem
	case s.SpaceAvailability <= tightSpaceScore:
		return types.OverheadTankSystem
	case s.Rainfall >= hybridRainfallScore && s.RoofSuitability >= hybridRoofScore:
		return types.HybridStorageRecharge
	default:
		return types.StandardUndergroundTank
	}
}

// Alternatives returns the first two archetypes in declaration order that
// differ from primary. They are not ranked by suitability.
func Alternatives(primary types.SystemArchetype) []types.SystemArchetype {
	out := make([]types.SystemArchetype, 0, alternativeOptionCount)
	for _, a := range types.AllArchetypes {
		if a == primary {
			continue
		}
		out = append(out, a)
		if len(out) == alternativeOptionCount {
			break
		}
	}
	return out
}
