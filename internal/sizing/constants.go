package sizing

import "github.com/jonathan/rainwater-advisor/internal/types"

// Storage and geometry constants.
const (
	MinStorageMonths = 2.0
	MaxStorageMonths = 6.0
	DaysPerMonth     = 30.0

	OverheadTankHeightM = 2.5

	WellPadM        = 1.5
	WellDepthM      = 15.0
	WellBoreDiamM   = 0.3
	MinTankDepthM   = 2.0
	MaxTankDepthM   = 3.5
	UsableSpaceFrac = 0.8
	TankAspectRatio = 1.2
)

// Cost constants, in currency units.
const (
	CostPerLiter          = 12.0
	InstallationSurcharge = 1.3
	AuxiliaryCostPerM2    = 200.0
	MaxAuxiliaryCost      = 50000.0
	MaintenanceRate       = 0.05
)

type archetypeSpec struct {
	materialMultiplier float64
	installationDays   int
	materials          []string
}

var archetypeSpecs = map[types.SystemArchetype]archetypeSpec{
	types.RechargePitWithStorage: {1.2, 10, []string{
		"Reinforced concrete tank", "Filter media (gravel, sand, charcoal)", "PVC downpipes", "First-flush diverter", "Recharge pit lining",
	}},
	types.InjectionWellSystem: {1.8, 14, []string{
		"Slotted PVC casing", "Gravel pack", "Desilting chamber", "Mesh filter", "PVC downpipes",
	}},
	types.LargeUndergroundTank: {1.5, 21, []string{
		"Reinforced concrete", "Waterproofing membrane", "Submersible pump", "Manhole cover", "PVC downpipes", "First-flush diverter",
	}},
	types.ModularTankSystem: {1.1, 7, []string{
		"Interlocking polypropylene modules", "Geotextile wrap", "Leaf screen", "PVC downpipes",
	}},
	types.OverheadTankSystem: {0.9, 5, []string{
		"HDPE storage tank", "Steel support stand", "Leaf screen", "PVC downpipes", "Overflow pipe",
	}},
	types.HybridStorageRecharge: {1.4, 18, []string{
		"Reinforced concrete tank", "Recharge well casing", "Filter media", "Overflow diverter", "PVC downpipes",
	}},
	types.StandardUndergroundTank: {1.0, 15, []string{
		"Brick masonry with plaster", "Waterproof coating", "Hand pump", "PVC downpipes", "First-flush diverter",
	}},
}

func specFor(a types.SystemArchetype) archetypeSpec {
	if s, ok := archetypeSpecs[a]; ok {
		return s
	}
	return archetypeSpecs[types.StandardUndergroundTank]
}
