package scoring

import (
	"math"

	"github.com/jonathan/rainwater-advisor/internal/types"
)

const (
	varianceScale     = 1000.0
	consistencyWeight = 0.6
	scoreLevelWeight  = 0.4
)

// Combine returns the weighted feasibility score and the confidence for a
// breakdown, both rounded to integers in [0,100].
func Combine(b types.ScoreBreakdown) (feasibility int, confidence int) {
	return CombineWeighted(b, DefaultWeights())
}

// CombineWeighted is Combine with explicit weights.
func CombineWeighted(b types.ScoreBreakdown, w Weights) (int, int) {
	weighted := float64(b.Rainfall)*w.Rainfall +
		float64(b.RoofSuitability)*w.RoofSuitability +
		float64(b.SpaceAvailability)*w.SpaceAvailability +
		float64(b.GroundwaterConditions)*w.GroundwaterConditions +
		float64(b.CostEffectiveness)*w.CostEffectiveness

	return int(math.Round(weighted)), Confidence(b)
}

// Confidence is high when sub-scores agree with each other and are
// collectively high: consistency (1 - variance/1000) weighs 60%, the mean
// score 40%.
func Confidence(b types.ScoreBreakdown) int {
	values := b.Values()
	n := float64(len(values))

	mean := 0.0
	for _, v := range values {
		mean += float64(v)
	}
	mean /= n

	variance := 0.0
	for _, v := range values {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= n

	consistency := math.Max(0, 1-variance/varianceScale)
	level := mean / 100
	c := math.Round((consistency*consistencyWeight + level*scoreLevelWeight) * 100)
	return int(math.Max(0, math.Min(100, c)))
}
