package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

type Metrics struct {
	MAE             float64 `json:"mae"`
	RMSE            float64 `json:"rmse"`
	R2              float64 `json:"r2"`
	TrainingSamples int     `json:"training_samples"`
	TestSamples     int     `json:"test_samples"`
}

func (m Metrics) String() string {
	return fmt.Sprintf("mae=%.2f rmse=%.2f r2=%.3f train=%d test=%d",
		m.MAE, m.RMSE, m.R2, m.TrainingSamples, m.TestSamples)
}

// Evaluate computes MAE, RMSE, and R² of predictions against actuals.
func Evaluate(predicted, actual []float64) (mae, rmse, r2 float64, err error) {
	if len(predicted) != len(actual) || len(predicted) == 0 {
		return 0, 0, 0, fmt.Errorf("evaluate needs equal non-empty slices, got %d and %d",
			len(predicted), len(actual))
	}

	var absSum, sqSum float64
	for i := range predicted {
		diff := predicted[i] - actual[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
	}

	n := float64(len(predicted))
	mae = absSum / n
	rmse = math.Sqrt(sqSum / n)
	r2 = stat.RSquaredFrom(predicted, actual, nil)

	return mae, rmse, r2, nil
}
