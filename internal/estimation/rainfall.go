// Package estimation synthesizes rainfall and groundwater profiles for a
// location from static lookup tables, falling back to coarse geographic
// rules when a location is not in the tables.
package estimation

import (
	"math"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Estimator produces rainfall and groundwater profiles. Its only state is the
// random source used for jitter.
type Estimator struct {
	rng RandomSource
}

// New creates an Estimator. A nil source disables jitter.
func New(rng RandomSource) *Estimator {
	if rng == nil {
		rng = NoJitter()
	}
	return &Estimator{rng: rng}
}

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Seasonal distributions, January first. Each sums to 1.0.
var (
	coastalPattern = [12]float64{0.01, 0.01, 0.01, 0.02, 0.05, 0.13, 0.18, 0.17, 0.15, 0.16, 0.08, 0.03}
	deltaPattern   = [12]float64{0.01, 0.01, 0.01, 0.02, 0.04, 0.12, 0.19, 0.19, 0.16, 0.15, 0.07, 0.03}
	// Rayalaseema gets both the south-west and north-east monsoons.
	dualMonsoonPattern = [12]float64{0.01, 0.01, 0.01, 0.03, 0.06, 0.08, 0.11, 0.13, 0.17, 0.22, 0.13, 0.04}
	northIndiaPattern  = [12]float64{0.03, 0.03, 0.02, 0.01, 0.02, 0.10, 0.29, 0.28, 0.14, 0.03, 0.01, 0.04}
	southIndiaPattern  = [12]float64{0.01, 0.01, 0.02, 0.04, 0.07, 0.14, 0.17, 0.16, 0.15, 0.13, 0.07, 0.03}
)

const (
	monthlyNoise    = 0.15 // +/- fraction applied to each synthesized month
	mmPerRainyDay   = 10.0
	maxRainyDays    = 25
	lowIntensityMm  = 50.0
	highIntensityMm = 200.0
)

// Reliability weights per estimate source
const (
	tableReliability     = 0.9
	nearestReliability   = 0.75
	heuristicReliability = 0.5
	defaultReliability   = 0.3
)

// RainfallFor estimates the rainfall profile for a location. The first
// successful strategy wins: name match, nearest region by coordinates,
// geographic heuristic, constant default. It never fails.
func (e *Estimator) RainfallFor(location string, coords *types.Coordinates) types.RainfallProfile {
	profile, lat := locateRainfall(location, coords)
	profile.Monthly = e.synthesizeMonthly(profile.AnnualRainfallMm, patternFor(profile.RegionClass, lat))
	return profile
}

func locateRainfall(location string, coords *types.Coordinates) (types.RainfallProfile, float64) {
	profile := types.RainfallProfile{Location: location}

	if r, ok := MatchRegion(location); ok {
		fillFromRegion(&profile, r)
		profile.Source = types.SourceRegionTable
		profile.Reliability = tableReliability
		return profile, r.Lat
	}

	if coords != nil {
		if r, _, ok := NearestRegion(*coords); ok {
			fillFromRegion(&profile, r)
			profile.Source = types.SourceNearestRegion
			profile.Reliability = nearestReliability
			return profile, coords.Lat
		}
		if zone, ok := zoneFor(*coords); ok {
			profile.RegionClass = zone.class
			profile.AnnualRainfallMm = zone.annualMm
			profile.Source = types.SourceHeuristic
			profile.Reliability = heuristicReliability
			return profile, coords.Lat
		}
	}

	profile.RegionClass = types.RegionInland
	profile.AnnualRainfallMm = defaultAnnualRainfallMm
	profile.Source = types.SourceDefault
	profile.Reliability = defaultReliability
	lat := 20.0
	if coords != nil {
		lat = coords.Lat
	}
	return profile, lat
}

func fillFromRegion(p *types.RainfallProfile, r Region) {
	p.Region = r.Name
	p.RegionClass = r.Class
	p.AnnualRainfallMm = r.AnnualRainfallMm
}

// patternFor picks the seasonal distribution for a region class. Southern
// hemisphere latitudes get the pattern shifted by six months.
func patternFor(class types.RegionClass, lat float64) [12]float64 {
	var pattern [12]float64
	switch class {
	case types.RegionCoastal, types.RegionHilly:
		pattern = coastalPattern
	case types.RegionDelta:
		pattern = deltaPattern
	case types.RegionRayalaseema:
		pattern = dualMonsoonPattern
	default:
		if math.Abs(lat) >= 20 {
			pattern = northIndiaPattern
		} else {
			pattern = southIndiaPattern
		}
	}
	if lat < 0 {
		var shifted [12]float64
		for i := range pattern {
			shifted[(i+6)%12] = pattern[i]
		}
		pattern = shifted
	}
	return pattern
}

func (e *Estimator) synthesizeMonthly(annualMm float64, pattern [12]float64) []types.MonthlyRainfall {
	months := make([]types.MonthlyRainfall, 0, 12)
	for i, share := range pattern {
		mm := annualMm * share * (1 + jitter(e.rng, monthlyNoise))
		mm = math.Round(math.Max(0, mm)*10) / 10
		months = append(months, types.MonthlyRainfall{
			Month:      monthNames[i],
			RainfallMm: mm,
			RainyDays:  rainyDays(mm),
			Intensity:  Intensity(mm),
		})
	}
	return months
}

func rainyDays(mm float64) int {
	days := int(math.Round(mm / mmPerRainyDay))
	if days > maxRainyDays {
		return maxRainyDays
	}
	return days
}

// Intensity buckets a monthly total: low below 50mm, high above 200mm.
func Intensity(monthlyMm float64) string {
	switch {
	case monthlyMm < lowIntensityMm:
		return types.IntensityLow
	case monthlyMm > highIntensityMm:
		return types.IntensityHigh
	default:
		return types.IntensityMedium
	}
}
