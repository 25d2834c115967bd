package model

import (
	"fmt"
	"time"

	"github.com/timgluz/zuckerspiegel/feature"
)

// testFraction is the share of rows held out for evaluation. The split is
// the contiguous tail of the set, not a random shuffle, so training stays
// deterministic and the test window is the most recent data.
const testFraction = 0.2

const minFitRows = 10

// Train fits a ridge model on a horizon's training set and returns the
// snapshot holding everything the serving path needs.
func Train(set *feature.TrainingSet, alpha float64) (*Snapshot, error) {
	n := set.Len()
	if n < minFitRows {
		return nil, fmt.Errorf("too few rows to fit a model: %d", n)
	}

	testCount := int(float64(n) * testFraction)
	if testCount < 1 {
		testCount = 1
	}
	trainCount := n - testCount

	xTrain, yTrain := set.X[:trainCount], set.Y[:trainCount]
	xTest, yTest := set.X[trainCount:], set.Y[trainCount:]

	scaler, err := FitScaler(xTrain)
	if err != nil {
		return nil, err
	}

	xTrainScaled, err := scaler.TransformAll(xTrain)
	if err != nil {
		return nil, err
	}

	ridge := NewRidge(alpha)
	if err := ridge.Fit(xTrainScaled, yTrain); err != nil {
		return nil, err
	}

	predicted := make([]float64, len(xTest))
	for i, row := range xTest {
		scaled, err := scaler.Transform(row)
		if err != nil {
			return nil, err
		}
		if predicted[i], err = ridge.Predict(scaled); err != nil {
			return nil, err
		}
	}

	mae, rmse, r2, err := Evaluate(predicted, yTest)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Horizon:        set.Horizon,
		FeatureColumns: set.Columns,
		Weights:        ridge.Weights(),
		Intercept:      ridge.Intercept(),
		Scaler:         *scaler,
		Alpha:          alpha,
		TrainedAt:      time.Now().UTC(),
		Metrics: Metrics{
			MAE:             mae,
			RMSE:            rmse,
			R2:              r2,
			TrainingSamples: trainCount,
			TestSamples:     testCount,
		},
	}, nil
}
