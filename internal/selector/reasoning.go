package selector

import (
	"fmt"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

type tier int

const (
	tierLow tier = iota
	tierMedium
	tierHigh
)

func tierOf(score, high, medium int) tier {
	switch {
	case score >= high:
		return tierHigh
	case score >= medium:
		return tierMedium
	default:
		return tierLow
	}
}

var archetypeReasons = map[types.SystemArchetype]string{
	types.RechargePitWithStorage:  "A recharge pit with storage captures roof runoff for daily use and sends the overflow to the aquifer.",
	types.InjectionWellSystem:     "An injection well recharges the aquifer directly and needs very little surface space.",
	types.LargeUndergroundTank:    "High rainfall and ample space justify a large underground tank for year-round storage.",
	types.ModularTankSystem:       "Modular tanks fit the available space and can be expanded as demand grows.",
	types.OverheadTankSystem:      "Limited ground space makes an overhead tank the most practical storage option.",
	types.HybridStorageRecharge:   "Strong rainfall and a good roof support combining storage with groundwater recharge.",
	types.StandardUndergroundTank: "A standard underground tank offers a balanced, low-maintenance storage solution.",
}

// Reasoning renders one sentence per input dimension followed by an
// archetype-specific sentence.
func Reasoning(in types.SiteInput, s types.ScoreBreakdown, primary types.SystemArchetype) []string {
	reasons := make([]string, 0, 5)

	switch tierOf(s.Rainfall, 80, 60) {
	case tierHigh:
		reasons = append(reasons, fmt.Sprintf("Excellent annual rainfall of %.0fmm provides abundant harvesting potential.", in.AnnualRainfallMm))
	case tierMedium:
		reasons = append(reasons, fmt.Sprintf("Moderate annual rainfall of %.0fmm supports seasonal harvesting.", in.AnnualRainfallMm))
	default:
		reasons = append(reasons, fmt.Sprintf("Low annual rainfall of %.0fmm limits how much water can be collected.", in.AnnualRainfallMm))
	}

	switch tierOf(s.RoofSuitability, 80, 60) {
	case tierHigh:
		reasons = append(reasons, fmt.Sprintf("The %.0fm² roof is well suited for collection.", in.RoofAreaM2))
	case tierMedium:
		reasons = append(reasons, fmt.Sprintf("The %.0fm² roof is adequate for collection.", in.RoofAreaM2))
	default:
		reasons = append(reasons, fmt.Sprintf("The %.0fm² roof yields limited runoff.", in.RoofAreaM2))
	}

	switch tierOf(s.SpaceAvailability, 80, 60) {
	case tierHigh:
		reasons = append(reasons, fmt.Sprintf("Ample open space (%.0fm²) allows a ground-level or buried structure.", in.AvailableSpaceM2))
	case tierMedium:
		reasons = append(reasons, fmt.Sprintf("Available space (%.0fm²) is sufficient for a compact structure.", in.AvailableSpaceM2))
	default:
		reasons = append(reasons, fmt.Sprintf("Open space (%.0fm²) is constrained relative to the roof.", in.AvailableSpaceM2))
	}

	switch tierOf(s.GroundwaterConditions, 70, 50) {
	case tierHigh:
		reasons = append(reasons, fmt.Sprintf("Groundwater at %.1fm with permeable soil favours recharge.", in.GroundwaterDepthM))
	case tierMedium:
		reasons = append(reasons, fmt.Sprintf("Groundwater at %.1fm allows some recharge.", in.GroundwaterDepthM))
	default:
		reasons = append(reasons, fmt.Sprintf("Groundwater at %.1fm and the soil make recharge difficult.", in.GroundwaterDepthM))
	}

	if r, ok := archetypeReasons[primary]; ok {
		reasons = append(reasons, r)
	}
	return reasons
}
