// Package sizing derives storage capacity, structure dimensions and cost for
// a chosen harvesting-system archetype.
package sizing

import (
	"math"

	"github.com/jonathan/rainwater-advisor/internal/scoring"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

// PotentialHarvestLiters is the annual volume a roof can collect.
func PotentialHarvestLiters(roofAreaM2, annualRainfallMm float64) float64 {
	return roofAreaM2 * annualRainfallMm * scoring.CollectionEfficiency * 0.001 * 1000
}

// DailyDemandLiters is household demand per day.
func DailyDemandLiters(dwellers int) float64 {
	return float64(dwellers) * scoring.LitersPerDweller
}

// StorageMonths is the number of months of demand the tank should hold,
// clamped to [2,6].
func StorageMonths(potentialHarvestLiters, dailyDemandLiters float64) float64 {
	if dailyDemandLiters <= 0 {
		return MinStorageMonths
	}
	months := potentialHarvestLiters / (dailyDemandLiters * DaysPerMonth)
	return math.Max(MinStorageMonths, math.Min(MaxStorageMonths, months))
}

// Capacity returns the target storage in liters for a site.
func Capacity(in types.SiteInput) int {
	daily := DailyDemandLiters(in.NumDwellers)
	months := StorageMonths(PotentialHarvestLiters(in.RoofAreaM2, in.AnnualRainfallMm), daily)
	return int(math.Round(daily * months * DaysPerMonth))
}

// Size computes capacity, dimensions, materials and installation time.
// Cost fields are left zero; see Generate.
func Size(in types.SiteInput, archetype types.SystemArchetype) types.StructureSpecs {
	capacity := Capacity(in)
	spec := specFor(archetype)

	materials := make([]string, len(spec.materials))
	copy(materials, spec.materials)

	return types.StructureSpecs{
		Type:             archetype.Label(),
		SystemType:       archetype,
		Capacity:         capacity,
		Dimensions:       Dimensions(archetype, capacity, in.AvailableSpaceM2),
		Materials:        materials,
		InstallationTime: spec.installationDays,
	}
}

// Dimensions derives geometry from capacity. Injection wells use a fixed
// geometry regardless of capacity.
func Dimensions(archetype types.SystemArchetype, capacityLiters int, availableSpaceM2 float64) types.Dimensions {
	volumeM3 := float64(capacityLiters) / 1000

	switch archetype {
	case types.OverheadTankSystem:
		d := 2 * math.Sqrt(volumeM3/(math.Pi*OverheadTankHeightM))
		d = round2(d)
		return types.Dimensions{Length: d, Width: d, Height: OverheadTankHeightM, Diameter: d}
	case types.InjectionWellSystem:
		return types.Dimensions{Length: WellPadM, Width: WellPadM, Height: WellDepthM, Diameter: WellBoreDiamM}
	default:
		depth := MaxTankDepthM
		if usable := availableSpaceM2 * UsableSpaceFrac; usable > 0 {
			depth = math.Max(MinTankDepthM, math.Min(MaxTankDepthM, volumeM3/usable))
		}
		area := volumeM3 / depth
		length := math.Sqrt(area * TankAspectRatio)
		width := area / length
		return types.Dimensions{Length: round2(length), Width: round2(width), Height: round2(depth)}
	}
}

// Generate sizes the structure and fills in its cost.
func Generate(in types.SiteInput, archetype types.SystemArchetype) types.StructureSpecs {
	specs := Size(in, archetype)
	specs.EstimatedCost = EstimateCost(specs.Capacity, archetype, in.RoofAreaM2)
	specs.MaintenanceCost = MaintenanceCost(specs.EstimatedCost)
	return specs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
