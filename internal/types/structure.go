//nolint:revive // types is a standard Go package name pattern
package types

// Dimensions of a harvesting structure in metres. Height doubles as depth
// for below-ground structures.
type Dimensions struct {
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Diameter float64 `json:"diameter,omitempty"`
}

// StructureSpecs describes the sized structure for a chosen archetype.
type StructureSpecs struct {
	Type             string          `json:"type"`
	SystemType       SystemArchetype `json:"system_type"`
	Capacity         int             `json:"capacity"`
	Dimensions       Dimensions      `json:"dimensions"`
	Materials        []string        `json:"materials"`
	EstimatedCost    int             `json:"estimated_cost"`
	InstallationTime int             `json:"installation_time"`
	MaintenanceCost  int             `json:"maintenance_cost"`
}
