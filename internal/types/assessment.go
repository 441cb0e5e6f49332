//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// HarvestSummary quantifies supply against demand for an assessment.
type HarvestSummary struct {
	PotentialHarvestLiters int     `json:"potential_harvest_liters"`
	AnnualDemandLiters     int     `json:"annual_demand_liters"`
	DemandCoveragePercent  float64 `json:"demand_coverage_percent"`
	PaybackYears           float64 `json:"payback_years"`
}

// Assessment is the complete report for one site: estimated inputs, the
// recommendation and the sized structure.
type Assessment struct {
	ID             uuid.UUID          `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	Input          SiteInput          `json:"input"`
	Rainfall       RainfallProfile    `json:"rainfall"`
	Groundwater    GroundwaterProfile `json:"groundwater"`
	Recommendation Recommendation     `json:"recommendation"`
	Structure      StructureSpecs     `json:"structure"`
	Harvest        HarvestSummary     `json:"harvest"`
}
