package scoring

// Weights are the contribution of each sub-score to the feasibility score.
type Weights struct {
	Rainfall              float64 `json:"rainfall"`
	RoofSuitability       float64 `json:"roof_suitability"`
	SpaceAvailability     float64 `json:"space_availability"`
	GroundwaterConditions float64 `json:"groundwater_conditions"`
	CostEffectiveness     float64 `json:"cost_effectiveness"`
}

// DefaultWeights returns the fixed feasibility weights. They sum to 1.0.
func DefaultWeights() Weights {
	return Weights{
		Rainfall:              0.25,
		RoofSuitability:       0.20,
		SpaceAvailability:     0.20,
		GroundwaterConditions: 0.20,
		CostEffectiveness:     0.15,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Rainfall + w.RoofSuitability + w.SpaceAvailability + w.GroundwaterConditions + w.CostEffectiveness
}
