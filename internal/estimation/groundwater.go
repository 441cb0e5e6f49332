package estimation

import (
	"math"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

type aquifer struct {
	depthM          float64
	quality         string
	aquiferType     string
	rechargeRatePct float64
}

var aquifersByClass = map[types.RegionClass]aquifer{
	types.RegionCoastal:     {8, "good", "coastal alluvium", 15},
	types.RegionDelta:       {5, "moderate, saline pockets", "deltaic alluvium", 20},
	types.RegionRayalaseema: {25, "moderate", "hard rock (granite/gneiss)", 8},
	types.RegionHilly:       {15, "excellent", "fractured khondalite", 12},
	types.RegionInland:      {20, "moderate", "weathered hard rock", 10},
}

// latitudeBand is the generic estimate used outside India's bounding box.
type latitudeBand struct {
	maxAbsLat float64
	aquifer   aquifer
}

var latitudeBands = []latitudeBand{
	{15, aquifer{12, "moderate", "unconsolidated sediments", 12}},
	{23, aquifer{18, "moderate", "weathered hard rock", 10}},
	{30, aquifer{25, "variable", "alluvial / sedimentary", 8}},
	{90, aquifer{10, "good", "glacial and fluvial deposits", 10}},
}

const (
	depthJitterM      = 3.0
	minDepthM         = 1.0
	minSeasonalDepthM = 0.5
	preMonsoonOffset  = 3.0
	monsoonOffset     = -2.0
)

// Confidence weights per groundwater estimate source
const (
	tableConfidence     = 0.8
	nearestConfidence   = 0.7
	heuristicConfidence = 0.5
	bandConfidence      = 0.4
	defaultConfidence   = 0.3
)

// GroundwaterFor estimates groundwater conditions for a location, mirroring
// RainfallFor's lookup order. Depth carries +/-3m of jitter.
func (e *Estimator) GroundwaterFor(location string, coords *types.Coordinates) types.GroundwaterProfile {
	profile := types.GroundwaterProfile{Location: location}

	var base aquifer
	if r, ok := MatchRegion(location); ok {
		base = aquifersByClass[r.Class]
		profile.Region, profile.RegionClass = r.Name, r.Class
		profile.Source, profile.Confidence = types.SourceRegionTable, tableConfidence
	} else {
		base = locateGroundwater(&profile, coords)
	}

	depth := math.Max(minDepthM, base.depthM+jitter(e.rng, depthJitterM))
	depth = math.Round(depth*10) / 10

	profile.DepthM = depth
	profile.Quality = base.quality
	profile.AquiferType = base.aquiferType
	profile.RechargeRatePct = base.rechargeRatePct
	profile.SeasonalVariation = types.SeasonalVariation{
		PreMonsoon:  depth + preMonsoonOffset,
		Monsoon:     math.Max(minSeasonalDepthM, depth+monsoonOffset),
		PostMonsoon: depth,
	}
	return profile
}

func locateGroundwater(p *types.GroundwaterProfile, coords *types.Coordinates) aquifer {
	if coords == nil {
		p.Source, p.Confidence = types.SourceDefault, defaultConfidence
		return aquifer{15, "unknown", "unknown", 10}
	}
	if r, _, ok := NearestRegion(*coords); ok {
		p.Region, p.RegionClass = r.Name, r.Class
		p.Source, p.Confidence = types.SourceNearestRegion, nearestConfidence
		return aquifersByClass[r.Class]
	}
	if zone, ok := zoneFor(*coords); ok {
		p.RegionClass = zone.class
		p.Source, p.Confidence = types.SourceHeuristic, heuristicConfidence
		return aquifersByClass[zone.class]
	}
	p.Source, p.Confidence = types.SourceLatitudeBand, bandConfidence
	absLat := math.Abs(coords.Lat)
	for _, band := range latitudeBands {
		if absLat < band.maxAbsLat {
			return band.aquifer
		}
	}
	return latitudeBands[len(latitudeBands)-1].aquifer
}
