//nolint:revive // types is a standard Go package name pattern
package types

// RegionClass groups regions with similar climate and hydrogeology.
type RegionClass string

const (
	RegionCoastal     RegionClass = "coastal"
	RegionDelta       RegionClass = "delta"
	RegionRayalaseema RegionClass = "rayalaseema"
	RegionHilly       RegionClass = "hilly"
	RegionInland      RegionClass = "inland"
)

// Estimate sources, from most to least specific.
const (
	SourceRegionTable   = "region_table"
	SourceNearestRegion = "nearest_region"
	SourceHeuristic     = "geographic_heuristic"
	SourceLatitudeBand  = "latitude_band"
	SourceDefault       = "default"
)

// Rainfall intensity buckets for a month
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// MonthlyRainfall is one synthesized month of a rainfall profile.
type MonthlyRainfall struct {
	Month      string  `json:"month"`
	RainfallMm float64 `json:"rainfall_mm"`
	RainyDays  int     `json:"rainy_days"`
	Intensity  string  `json:"intensity"`
}

// RainfallProfile is the estimated rainfall for a location. Reliability is
// informational and does not feed the feasibility score.
type RainfallProfile struct {
	Location         string            `json:"location"`
	Region           string            `json:"region,omitempty"`
	RegionClass      RegionClass       `json:"region_class"`
	Source           string            `json:"source"`
	AnnualRainfallMm float64           `json:"annual_rainfall_mm"`
	Monthly          []MonthlyRainfall `json:"monthly"`
	Reliability      float64           `json:"reliability"`
}

// SeasonalVariation holds groundwater depths across the monsoon cycle.
type SeasonalVariation struct {
	PreMonsoon  float64 `json:"pre_monsoon"`
	Monsoon     float64 `json:"monsoon"`
	PostMonsoon float64 `json:"post_monsoon"`
}

// GroundwaterProfile is the estimated groundwater situation for a location.
type GroundwaterProfile struct {
	Location          string            `json:"location"`
	Region            string            `json:"region,omitempty"`
	RegionClass       RegionClass       `json:"region_class,omitempty"`
	Source            string            `json:"source"`
	DepthM            float64           `json:"depth_m"`
	Quality           string            `json:"quality"`
	AquiferType       string            `json:"aquifer_type"`
	RechargeRatePct   float64           `json:"recharge_rate_pct"`
	SeasonalVariation SeasonalVariation `json:"seasonal_variation"`
	Confidence        float64           `json:"confidence"`
}
