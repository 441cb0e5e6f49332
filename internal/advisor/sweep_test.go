package advisor

import (
	"context"
	"testing"

	"github.com/jonathan/rainwater-advisor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep_RoofArea(t *testing.T) {
	values := []float64{50, 150, 300, 600}
	rows, err := Sweep(context.Background(), scenarioOne(), ParamRoofArea, values)
	require.NoError(t, err)
	require.Len(t, rows, len(values))

	for i, row := range rows {
		assert.Equal(t, values[i], row.Value)
		assert.Empty(t, row.Error)
		assert.True(t, row.SystemType.Valid())
	}
	assert.Equal(t, types.InjectionWellSystem, rows[1].SystemType)
	assert.Equal(t, 73, rows[1].FeasibilityScore)
	assert.Equal(t, 2725680, rows[1].EstimatedCost)
}

func TestSweep_InvalidValueReportedOnRow(t *testing.T) {
	rows, err := Sweep(context.Background(), scenarioOne(), ParamDwellers, []float64{4, 0, 2.5})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Empty(t, rows[0].Error)
	assert.Contains(t, rows[1].Error, "num_dwellers")
	assert.Contains(t, rows[2].Error, "whole number")
	assert.Empty(t, rows[1].SystemType)
}

func TestSweep_UnknownParam(t *testing.T) {
	_, err := Sweep(context.Background(), scenarioOne(), "colour", []float64{1})
	var invalid *types.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.HasField("param"))
}

func TestSweep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, scenarioOne(), ParamRainfall, []float64{500, 900})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSweep_Empty(t *testing.T) {
	rows, err := Sweep(context.Background(), scenarioOne(), ParamSpace, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
