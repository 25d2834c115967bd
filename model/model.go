// Package model trains and serves one regression model per prediction
// horizon. The regression technique hides behind Regressor so it can be
// swapped without touching the pipeline or the serving path.
package model

// Regressor is the model-fitting collaborator: fit on a feature matrix and
// target vector, then predict single rows.
type Regressor interface {
	Fit(x [][]float64, y []float64) error
	Predict(features []float64) (float64, error)
}
