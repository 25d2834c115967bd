package model

import (
	"fmt"
	"time"
)

// Snapshot is the serializable trained state for one horizon: ridge
// weights, scaler parameters, the feature schema the model was fitted on,
// and evaluation metrics. It is what the registry stores and serves.
type Snapshot struct {
	Horizon        int       `json:"horizon"`
	FeatureColumns []string  `json:"feature_columns"`
	Weights        []float64 `json:"weights"`
	Intercept      float64   `json:"intercept"`
	Scaler         Scaler    `json:"scaler"`
	Alpha          float64   `json:"alpha"`
	TrainedAt      time.Time `json:"trained_at"`
	Metrics        Metrics   `json:"metrics"`
}

// Predict scales a raw feature row and applies the linear model. The row
// must follow the snapshot's own column order.
func (s *Snapshot) Predict(features []float64) (float64, error) {
	if len(features) != len(s.FeatureColumns) {
		return 0, fmt.Errorf("snapshot expects %d features, got %d", len(s.FeatureColumns), len(features))
	}

	scaled, err := s.Scaler.Transform(features)
	if err != nil {
		return 0, err
	}

	prediction := s.Intercept
	for j, v := range scaled {
		prediction += s.Weights[j] * v
	}
	return prediction, nil
}

// FeatureImportance maps each column to its coefficient. Sign indicates
// direction: positive raises the predicted glucose, negative lowers it.
func (s *Snapshot) FeatureImportance() map[string]float64 {
	importance := make(map[string]float64, len(s.FeatureColumns))
	for j, name := range s.FeatureColumns {
		importance[name] = s.Weights[j]
	}
	return importance
}
