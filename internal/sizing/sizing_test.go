package sizing

import (
	"math"
	"testing"

	"github.com/jonathan/rainwater-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioOne() types.SiteInput {
	return types.SiteInput{
		RoofAreaM2:        150,
		RoofType:          "concrete",
		AnnualRainfallMm:  800,
		GroundwaterDepthM: 15,
		SoilType:          "loam",
		AvailableSpaceM2:  25,
		NumDwellers:       4,
	}
}

func TestCapacity_ScenarioOne(t *testing.T) {
	// harvest 96,000 L; daily demand 600 L -> 5.33 months
	assert.InDelta(t, 96000.0, PotentialHarvestLiters(150, 800), 1e-6)
	assert.Equal(t, 96000, Capacity(scenarioOne()))
}

func TestStorageMonths_Clamped(t *testing.T) {
	tests := []struct {
		name    string
		harvest float64
		daily   float64
		want    float64
	}{
		{"tiny harvest clamps to 2", 1000, 600, 2},
		{"huge harvest clamps to 6", 1e7, 600, 6},
		{"within range", 72000, 600, 4},
		{"zero demand", 1000, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StorageMonths(tt.harvest, tt.daily), 1e-9)
		})
	}

	for harvest := 0.0; harvest < 1e6; harvest += 7919 {
		m := StorageMonths(harvest, 450)
		assert.GreaterOrEqual(t, m, MinStorageMonths)
		assert.LessOrEqual(t, m, MaxStorageMonths)
	}
}

func TestDimensions_Underground(t *testing.T) {
	dims := Dimensions(types.StandardUndergroundTank, 96000, 25)

	// 96m3 / (25 * 0.8) = 4.8m -> clamped to 3.5m deep
	assert.Equal(t, 3.5, dims.Height)
	assert.Equal(t, 5.74, dims.Length)
	assert.Equal(t, 4.78, dims.Width)
	assert.Zero(t, dims.Diameter)
	assert.InDelta(t, 96.0, dims.Length*dims.Width*dims.Height, 0.5)
}

func TestDimensions_UndergroundShallowWhenSpaceIsAmple(t *testing.T) {
	dims := Dimensions(types.LargeUndergroundTank, 96000, 200)

	assert.Equal(t, MinTankDepthM, dims.Height)
	assert.Equal(t, 7.59, dims.Length)
	assert.Equal(t, 6.32, dims.Width)
}

func TestDimensions_UndergroundNoSpaceUsesMaxDepth(t *testing.T) {
	dims := Dimensions(types.ModularTankSystem, 36000, 0)

	assert.Equal(t, MaxTankDepthM, dims.Height)
	assert.False(t, math.IsInf(dims.Length, 0))
	assert.False(t, math.IsNaN(dims.Width))
}

func TestDimensions_Overhead(t *testing.T) {
	dims := Dimensions(types.OverheadTankSystem, 36000, 0)

	assert.Equal(t, OverheadTankHeightM, dims.Height)
	assert.Equal(t, 4.28, dims.Diameter)
	assert.Equal(t, dims.Diameter, dims.Length)
	assert.Equal(t, dims.Diameter, dims.Width)
}

func TestDimensions_InjectionWellIgnoresCapacity(t *testing.T) {
	small := Dimensions(types.InjectionWellSystem, 1000, 5)
	large := Dimensions(types.InjectionWellSystem, 500000, 500)

	assert.Equal(t, small, large)
	assert.Equal(t, types.Dimensions{Length: 1.5, Width: 1.5, Height: 15, Diameter: 0.3}, small)
}

func TestGenerate_ScenarioOneInjectionWell(t *testing.T) {
	specs := Generate(scenarioOne(), types.InjectionWellSystem)

	assert.Equal(t, "Injection Well System", specs.Type)
	assert.Equal(t, types.InjectionWellSystem, specs.SystemType)
	assert.Equal(t, 96000, specs.Capacity)
	// 96000 * 12 * 1.8 * 1.3 + min(50000, 150*200)
	assert.Equal(t, 2725680, specs.EstimatedCost)
	assert.Equal(t, 136284, specs.MaintenanceCost)
	assert.Equal(t, 14, specs.InstallationTime)
	assert.NotEmpty(t, specs.Materials)
}

func TestGenerate_MaintenanceIsFivePercent(t *testing.T) {
	for _, a := range types.AllArchetypes {
		for _, roof := range []float64{10, 150, 400} {
			in := scenarioOne()
			in.RoofAreaM2 = roof
			specs := Generate(in, a)
			assert.Equal(t, int(math.Round(float64(specs.EstimatedCost)*0.05)), specs.MaintenanceCost, "%s roof %v", a, roof)
		}
	}
}

func TestEstimateCost(t *testing.T) {
	assert.Equal(t, 515440, EstimateCost(36000, types.OverheadTankSystem, 50))
	// auxiliary capped at 50,000
	assert.Equal(t, 3419600, EstimateCost(216000, types.StandardUndergroundTank, 1000))
	assert.Equal(t, 50000.0, AuxiliaryCost(1000))
	assert.Equal(t, 30000.0, AuxiliaryCost(150))
}

func TestMaterialMultipliers_InRange(t *testing.T) {
	for _, a := range types.AllArchetypes {
		m := MaterialMultiplier(a)
		assert.GreaterOrEqual(t, m, 0.9, string(a))
		assert.LessOrEqual(t, m, 1.8, string(a))
	}
}

func TestSize_MaterialsAreCopied(t *testing.T) {
	specs := Size(scenarioOne(), types.ModularTankSystem)
	require.NotEmpty(t, specs.Materials)
	specs.Materials[0] = "mutated"

	again := Size(scenarioOne(), types.ModularTankSystem)
	assert.NotEqual(t, "mutated", again.Materials[0])
	assert.Zero(t, specs.EstimatedCost)
}
