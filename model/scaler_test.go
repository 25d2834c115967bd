package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestFitScalerStandardizesColumns(t *testing.T) {
	x := [][]float64{
		{100, 1},
		{120, 2},
		{140, 3},
		{160, 4},
	}

	scaler, err := FitScaler(x)
	require.NoError(t, err)

	scaled, err := scaler.TransformAll(x)
	require.NoError(t, err)

	column := make([]float64, len(scaled))
	for j := 0; j < 2; j++ {
		for i, row := range scaled {
			column[i] = row[j]
		}
		assert.InDelta(t, 0.0, stat.Mean(column, nil), 1e-9)
		assert.InDelta(t, 1.0, stat.StdDev(column, nil), 1e-9)
	}
}

func TestFitScalerConstantColumn(t *testing.T) {
	x := [][]float64{{5, 1}, {5, 2}, {5, 3}}

	scaler, err := FitScaler(x)
	require.NoError(t, err)
	assert.Equal(t, 1.0, scaler.Scale[0])

	scaled, err := scaler.Transform([]float64{5, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, scaled[0])
}

func TestScalerTransformChecksWidth(t *testing.T) {
	scaler := &Scaler{Mean: []float64{0, 0}, Scale: []float64{1, 1}}

	_, err := scaler.Transform([]float64{1})
	assert.Error(t, err)
}

func TestFitScalerEmptyInput(t *testing.T) {
	_, err := FitScaler(nil)
	assert.Error(t, err)
}

func TestEvaluateMetrics(t *testing.T) {
	predicted := []float64{110, 120, 130}
	actual := []float64{100, 120, 140}

	mae, rmse, r2, err := Evaluate(predicted, actual)
	require.NoError(t, err)

	assert.InDelta(t, 20.0/3, mae, 1e-9)
	assert.InDelta(t, 8.16496580927726, rmse, 1e-9)
	assert.Less(t, r2, 1.0)

	perfect, perfectRMSE, perfectR2, err := Evaluate(actual, actual)
	require.NoError(t, err)
	assert.Zero(t, perfect)
	assert.Zero(t, perfectRMSE)
	assert.InDelta(t, 1.0, perfectR2, 1e-9)

	_, _, _, err = Evaluate([]float64{1}, []float64{1, 2})
	assert.Error(t, err)
}
