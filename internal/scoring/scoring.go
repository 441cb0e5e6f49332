// Package scoring rates a site on five feasibility dimensions and combines
// them into a single feasibility score with a confidence value.
package scoring

import (
	"math"
	"strings"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Runoff and harvest constants shared with structure sizing
const (
	CollectionEfficiency = 0.8
	LitersPerDweller     = 150.0
	DaysPerYear          = 365.0
)

// step is one threshold of a non-decreasing step function.
type step struct {
	min   float64
	score int
}

func stepScore(value float64, steps []step, floor int) int {
	for _, s := range steps {
		if value >= s.min {
			return s.score
		}
	}
	return floor
}

var rainfallSteps = []step{{1500, 100}, {1000, 80}, {600, 60}, {400, 40}}

// RainfallScore maps annual rainfall in mm onto [20,100].
func RainfallScore(annualMm float64) int {
	return stepScore(annualMm, rainfallSteps, 20)
}

// Roof materials in lookup order; the first key contained in the input wins.
var roofMaterials = []struct {
	key         string
	score       int
	coefficient float64
}{
	{"concrete", 35, 0.85},
	{"tile", 30, 0.75},
	{"metal", 40, 0.90},
	{"asbestos", 25, 0.80},
	{"green", 20, 0.40},
}

const (
	unknownRoofScore       = 25
	unknownRoofCoefficient = 0.80
	runoffBonusFactor      = 25.0
)

func lookupRoof(roofType string) (int, float64) {
	normalized := strings.ToLower(strings.TrimSpace(roofType))
	for _, m := range roofMaterials {
		if strings.Contains(normalized, m.key) {
			return m.score, m.coefficient
		}
	}
	return unknownRoofScore, unknownRoofCoefficient
}

// RunoffCoefficient returns the share of rainfall a roof material sheds.
func RunoffCoefficient(roofType string) float64 {
	_, c := lookupRoof(roofType)
	return c
}

var roofAreaSteps = []step{{200, 40}, {100, 30}, {50, 20}}

// RoofSuitabilityScore adds an area term, a material term and a runoff
// bonus, capped at 100.
func RoofSuitabilityScore(roofAreaM2 float64, roofType string) int {
	area := stepScore(roofAreaM2, roofAreaSteps, 10)
	material, coefficient := lookupRoof(roofType)
	total := float64(area+material) + coefficient*runoffBonusFactor
	return clampScore(total)
}

var spaceRatioSteps = []step{{0.3, 100}, {0.2, 80}, {0.15, 60}, {0.1, 40}}

// SpaceAvailabilityScore rates the open space available relative to roof area.
func SpaceAvailabilityScore(availableSpaceM2, roofAreaM2 float64) int {
	if roofAreaM2 <= 0 {
		return 20
	}
	return stepScore(availableSpaceM2/roofAreaM2, spaceRatioSteps, 20)
}

// Soil permeability terms, most specific first.
var soilTerms = []struct {
	key   string
	score int
}{
	{"black cotton", 10},
	{"sandy", 50},
	{"loam", 40},
	{"clay", 20},
	{"rocky", 15},
}

const defaultSoilScore = 40 // loam

func soilScore(soilType string) int {
	normalized := strings.ToLower(strings.TrimSpace(soilType))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	for _, s := range soilTerms {
		if strings.Contains(normalized, s.key) {
			return s.score
		}
	}
	return defaultSoilScore
}

// depthScore favours the 5-15m band; very shallow tables risk contamination
// and deep ones are slow to recharge.
func depthScore(depthM float64) int {
	switch {
	case depthM <= 5:
		return 20
	case depthM <= 15:
		return 50
	case depthM <= 30:
		return 40
	case depthM <= 50:
		return 30
	default:
		return 20
	}
}

// GroundwaterScore combines depth band and soil permeability, capped at 100.
func GroundwaterScore(depthM float64, soilType string) int {
	return clampScore(float64(depthScore(depthM) + soilScore(soilType)))
}

var supplyRatioSteps = []step{{0.8, 100}, {0.6, 85}, {0.4, 70}, {0.2, 55}}

// CostEffectivenessScore compares potential annual harvest with household
// demand. dwellers must be positive; callers validate first.
func CostEffectivenessScore(roofAreaM2, annualRainfallMm float64, dwellers int) int {
	if dwellers <= 0 {
		return 30
	}
	potentialM3 := roofAreaM2 * annualRainfallMm * CollectionEfficiency * 0.001
	demandM3 := float64(dwellers) * LitersPerDweller * DaysPerYear * 0.001
	return stepScore(potentialM3/demandM3, supplyRatioSteps, 30)
}

// Score computes the five sub-scores for a validated input.
func Score(in types.SiteInput) types.ScoreBreakdown {
	return types.ScoreBreakdown{
		Rainfall:              RainfallScore(in.AnnualRainfallMm),
		RoofSuitability:       RoofSuitabilityScore(in.RoofAreaM2, in.RoofType),
		SpaceAvailability:     SpaceAvailabilityScore(in.AvailableSpaceM2, in.RoofAreaM2),
		GroundwaterConditions: GroundwaterScore(in.GroundwaterDepthM, in.SoilType),
		CostEffectiveness:     CostEffectivenessScore(in.RoofAreaM2, in.AnnualRainfallMm, in.NumDwellers),
	}
}

func clampScore(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}
