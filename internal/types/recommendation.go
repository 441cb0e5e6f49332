//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// SystemArchetype is one of the seven canonical harvesting-system designs.
type SystemArchetype string

const (
	RechargePitWithStorage  SystemArchetype = "recharge_pit_with_storage"
	InjectionWellSystem     SystemArchetype = "injection_well_system"
	LargeUndergroundTank    SystemArchetype = "large_underground_tank"
	ModularTankSystem       SystemArchetype = "modular_tank_system"
	OverheadTankSystem      SystemArchetype = "overhead_tank_system"
	HybridStorageRecharge   SystemArchetype = "hybrid_storage_recharge"
	StandardUndergroundTank SystemArchetype = "standard_underground_tank"
)

// AllArchetypes lists every archetype in declaration order. Alternative
// options are drawn from this order.
var AllArchetypes = []SystemArchetype{
	RechargePitWithStorage,
	InjectionWellSystem,
	LargeUndergroundTank,
	ModularTankSystem,
	OverheadTankSystem,
	HybridStorageRecharge,
	StandardUndergroundTank,
}

var archetypeLabels = map[SystemArchetype]string{
	RechargePitWithStorage:  "Recharge Pit with Storage",
	InjectionWellSystem:     "Injection Well System",
	LargeUndergroundTank:    "Large Underground Tank",
	ModularTankSystem:       "Modular Tank System",
	OverheadTankSystem:      "Overhead Tank System",
	HybridStorageRecharge:   "Hybrid Storage and Recharge",
	StandardUndergroundTank: "Standard Underground Tank",
}

// Valid reports whether a is one of the canonical archetypes.
func (a SystemArchetype) Valid() bool {
	_, ok := archetypeLabels[a]
	return ok
}

// Label returns the display name of the archetype.
func (a SystemArchetype) Label() string {
	if label, ok := archetypeLabels[a]; ok {
		return label
	}
	return string(a)
}

// ParseArchetype accepts either the canonical identifier or the display label.
func ParseArchetype(s string) (SystemArchetype, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for _, a := range AllArchetypes {
		if string(a) == key {
			return a, true
		}
		label := strings.ReplaceAll(strings.ToLower(a.Label()), " ", "_")
		if label == key {
			return a, true
		}
	}
	return "", false
}

// ScoreBreakdown holds the five feasibility sub-scores, each in [0,100].
type ScoreBreakdown struct {
	Rainfall              int `json:"rainfall"`
	RoofSuitability       int `json:"roof_suitability"`
	SpaceAvailability     int `json:"space_availability"`
	GroundwaterConditions int `json:"groundwater_conditions"`
	CostEffectiveness     int `json:"cost_effectiveness"`
}

// Values returns the sub-scores in a fixed order.
func (b ScoreBreakdown) Values() []int {
	return []int{b.Rainfall, b.RoofSuitability, b.SpaceAvailability, b.GroundwaterConditions, b.CostEffectiveness}
}

// Recommendation is the scoring engine's verdict for one site.
type Recommendation struct {
	SystemType         SystemArchetype   `json:"system_type"`
	Confidence         int               `json:"confidence"`
	Reasoning          []string          `json:"reasoning"`
	AlternativeOptions []SystemArchetype `json:"alternative_options"`
	FeasibilityScore   int               `json:"feasibility_score"`
	ScoreBreakdown     ScoreBreakdown    `json:"score_breakdown"`
}
