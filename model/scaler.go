package model

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance, column by
// column. Fitted on training rows only; the same parameters are stored in
// the model snapshot so serving scales identically.
type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func FitScaler(x [][]float64) (*Scaler, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, fmt.Errorf("cannot fit scaler on empty matrix")
	}

	cols := len(x[0])
	scaler := &Scaler{
		Mean:  make([]float64, cols),
		Scale: make([]float64, cols),
	}

	column := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i, row := range x {
			column[i] = row[j]
		}
		scaler.Mean[j] = stat.Mean(column, nil)
		scaler.Scale[j] = stat.StdDev(column, nil)
		// constant columns pass through unscaled
		if scaler.Scale[j] == 0 {
			scaler.Scale[j] = 1
		}
	}

	return scaler, nil
}

func (s *Scaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.Mean) {
		return nil, fmt.Errorf("scaler fitted on %d features, got %d", len(s.Mean), len(features))
	}

	scaled := make([]float64, len(features))
	for j, v := range features {
		scaled[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return scaled, nil
}

func (s *Scaler) TransformAll(x [][]float64) ([][]float64, error) {
	scaled := make([][]float64, len(x))
	for i, row := range x {
		transformed, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		scaled[i] = transformed
	}
	return scaled, nil
}
