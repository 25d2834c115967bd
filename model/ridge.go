package model

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const DefaultAlpha = 1.0

// Ridge is linear regression with L2 regularization, fitted in closed form
// from the normal equations. It expects standardized inputs; the intercept
// is the target mean and is not penalized.
type Ridge struct {
	Alpha float64

	weights   []float64
	intercept float64
}

func NewRidge(alpha float64) *Ridge {
	return &Ridge{Alpha: alpha}
}

// Fit solves (XᵀX + αI)w = Xᵀ(y - ȳ).
func (r *Ridge) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("fit needs matching non-empty x and y, got %d rows and %d targets",
			len(x), len(y))
	}

	rows, cols := len(x), len(x[0])
	if rows < cols {
		return fmt.Errorf("fit needs at least as many rows as features, got %d rows for %d features",
			rows, cols)
	}

	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(rows)

	flat := make([]float64, 0, rows*cols)
	centered := make([]float64, rows)
	for i, row := range x {
		if len(row) != cols {
			return fmt.Errorf("ragged feature matrix at row %d", i)
		}
		flat = append(flat, row...)
		centered[i] = y[i] - yMean
	}

	xm := mat.NewDense(rows, cols, flat)
	yv := mat.NewVecDense(rows, centered)

	xtx := mat.NewDense(cols, cols, nil)
	xtx.Mul(xm.T(), xm)
	for j := 0; j < cols; j++ {
		xtx.Set(j, j, xtx.At(j, j)+r.Alpha)
	}

	xty := mat.NewVecDense(cols, nil)
	xty.MulVec(xm.T(), yv)

	var w mat.VecDense
	if err := w.SolveVec(xtx, xty); err != nil {
		return fmt.Errorf("failed to solve ridge normal equations: %w", err)
	}

	r.weights = make([]float64, cols)
	for j := 0; j < cols; j++ {
		r.weights[j] = w.AtVec(j)
	}
	r.intercept = yMean

	return nil
}

func (r *Ridge) Predict(features []float64) (float64, error) {
	if r.weights == nil {
		return 0, fmt.Errorf("ridge model is not fitted")
	}
	if len(features) != len(r.weights) {
		return 0, fmt.Errorf("model fitted on %d features, got %d", len(r.weights), len(features))
	}

	prediction := r.intercept
	for j, v := range features {
		prediction += r.weights[j] * v
	}
	return prediction, nil
}

func (r *Ridge) Weights() []float64 {
	weights := make([]float64, len(r.weights))
	copy(weights, r.weights)
	return weights
}

func (r *Ridge) Intercept() float64 {
	return r.intercept
}
