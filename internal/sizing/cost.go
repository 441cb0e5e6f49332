package sizing

import (
	"math"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// EstimateCost is material cost with a 30% installation surcharge plus
// auxiliary plumbing proportional to roof area (capped).
func EstimateCost(capacityLiters int, archetype types.SystemArchetype, roofAreaM2 float64) int {
	material := float64(capacityLiters) * CostPerLiter * specFor(archetype).materialMultiplier
	return int(math.Round(material*InstallationSurcharge + AuxiliaryCost(roofAreaM2)))
}

// AuxiliaryCost covers gutters, downpipes and filters.
func AuxiliaryCost(roofAreaM2 float64) float64 {
	return math.Min(MaxAuxiliaryCost, roofAreaM2*AuxiliaryCostPerM2)
}

// MaintenanceCost is the yearly upkeep, 5% of the estimated cost.
func MaintenanceCost(estimatedCost int) int {
	return int(math.Round(float64(estimatedCost) * MaintenanceRate))
}

// MaterialMultiplier exposes the per-archetype material cost factor.
func MaterialMultiplier(archetype types.SystemArchetype) float64 {
	return specFor(archetype).materialMultiplier
}
