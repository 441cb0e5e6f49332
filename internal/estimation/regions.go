package estimation

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

// Region is a named entry of the rainfall lookup table.
type Region struct {
	Name             string
	Lat              float64
	Lng              float64
	AnnualRainfallMm float64
	Class            types.RegionClass
}

// regions covers the districts of Andhra Pradesh plus major Indian cities.
// Annual totals are long-period averages.
var regions = []Region{
	{"Srikakulam", 18.30, 83.90, 1162, types.RegionCoastal},
	{"Vizianagaram", 18.11, 83.40, 1131, types.RegionCoastal},
	{"Visakhapatnam", 17.69, 83.22, 1118, types.RegionCoastal},
	{"East Godavari", 17.00, 82.00, 1218, types.RegionDelta},
	{"West Godavari", 16.92, 81.34, 1152, types.RegionDelta},
	{"Krishna", 16.61, 80.72, 1028, types.RegionDelta},
	{"Vijayawada", 16.51, 80.65, 1034, types.RegionDelta},
	{"Guntur", 16.31, 80.44, 854, types.RegionCoastal},
	{"Prakasam", 15.50, 80.05, 822, types.RegionCoastal},
	{"Nellore", 14.44, 79.99, 1080, types.RegionCoastal},
	{"Kurnool", 15.83, 78.04, 670, types.RegionRayalaseema},
	{"Anantapur", 14.68, 77.60, 553, types.RegionRayalaseema},
	{"Kadapa", 14.47, 78.82, 700, types.RegionRayalaseema},
	{"Chittoor", 13.22, 79.10, 934, types.RegionRayalaseema},
	{"Tirupati", 13.63, 79.42, 1000, types.RegionRayalaseema},
	{"Araku Valley", 18.33, 82.87, 1400, types.RegionHilly},
	{"Paderu", 18.08, 82.67, 1500, types.RegionHilly},
	{"Hyderabad", 17.39, 78.49, 812, types.RegionInland},
	{"Chennai", 13.08, 80.27, 1400, types.RegionCoastal},
	{"Bengaluru", 12.97, 77.59, 970, types.RegionInland},
	{"Mumbai", 19.08, 72.88, 2200, types.RegionCoastal},
	{"Delhi", 28.61, 77.21, 790, types.RegionInland},
	{"Kolkata", 22.57, 88.36, 1600, types.RegionDelta},
	{"Pune", 18.52, 73.86, 720, types.RegionInland},
	{"Ahmedabad", 23.02, 72.57, 800, types.RegionInland},
	{"Jaipur", 26.91, 75.79, 650, types.RegionInland},
	{"Kochi", 9.93, 76.27, 3000, types.RegionCoastal},
}

// Nearest-neighbour matches are only attempted inside India's bounding box
// and accepted below this distance in degrees.
const (
	indiaMinLat        = 6.0
	indiaMaxLat        = 37.5
	indiaMinLng        = 68.0
	indiaMaxLng        = 97.5
	maxNearestDistance = 1.0
)

func withinIndia(c types.Coordinates) bool {
	return c.Lat >= indiaMinLat && c.Lat <= indiaMaxLat && c.Lng >= indiaMinLng && c.Lng <= indiaMaxLng
}

// minPartialQuery is the shortest query matched as a prefix/fragment of a region name.
const minPartialQuery = 4

// MatchRegion finds a region whose name occurs as whole words in location (or
// vice versa), case-insensitively. Exact name matches win over substring matches.
func MatchRegion(location string) (Region, bool) {
	query := strings.ToLower(strings.TrimSpace(location))
	if query == "" {
		return Region{}, false
	}
	for _, r := range regions {
		if strings.ToLower(r.Name) == query {
			return r, true
		}
	}
	for _, r := range regions {
		name := strings.ToLower(r.Name)
		if containsWord(query, name) || (len(query) >= minPartialQuery && containsWord(name, query)) {
			return r, true
		}
	}
	return Region{}, false
}

// containsWord reports whether sub occurs in s with no letter or digit
// directly before or after it, so "Krishnagiri" does not match "Krishna".
func containsWord(s, sub string) bool {
	for from := 0; from <= len(s)-len(sub); {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(sub)
		if !wordRuneBefore(s, start) && !wordRuneAfter(s, end) {
			return true
		}
		from = start + 1
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordRuneAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NearestRegion returns the closest region by Euclidean distance in lat/lng
// space, accepted only inside India and within maxNearestDistance degrees.
func NearestRegion(c types.Coordinates) (Region, float64, bool) {
	if !withinIndia(c) {
		return Region{}, 0, false
	}
	best := -1
	bestDist := math.Inf(1)
	for i, r := range regions {
		d := math.Hypot(c.Lat-r.Lat, c.Lng-r.Lng)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= maxNearestDistance {
		return Region{}, bestDist, false
	}
	return regions[best], bestDist, true
}

// bbox is one rule of the coarse geographic rainfall heuristic.
type bbox struct {
	minLat, maxLat float64
	minLng, maxLng float64
	annualMm       float64
	class          types.RegionClass
}

func (b bbox) contains(c types.Coordinates) bool {
	return c.Lat >= b.minLat && c.Lat < b.maxLat && c.Lng >= b.minLng && c.Lng < b.maxLng
}

// rainfallZones are checked in order; the first containing box wins.
var rainfallZones = []bbox{
	{8, 12, 75, 77, 3000, types.RegionCoastal},    // Kerala and the southern Western Ghats
	{12, 21, 72, 75, 2500, types.RegionCoastal},   // Konkan and Karnataka coast
	{21, 29, 88, 97.5, 2200, types.RegionHilly},   // North-east
	{24, 30, 69, 76, 400, types.RegionInland},     // Thar desert
	{29, 37.5, 73, 80, 1100, types.RegionHilly},   // Western Himalaya
	{21, 29, 76, 88, 1000, types.RegionInland},    // Gangetic plain and central India
	{19, 24, 68, 76, 700, types.RegionInland},     // Gujarat and western Deccan
	{8, 21, 77, 85, 900, types.RegionInland},      // Eastern Deccan plateau
	{6, 37.5, 68, 97.5, 1000, types.RegionInland}, // rest of India
}

const defaultAnnualRainfallMm = 800

// zoneFor returns the first rainfall zone containing c. Points outside
// India never match.
func zoneFor(c types.Coordinates) (bbox, bool) {
	if !withinIndia(c) {
		return bbox{}, false
	}
	for _, zone := range rainfallZones {
		if zone.contains(c) {
			return zone, true
		}
	}
	return bbox{}, false
}
