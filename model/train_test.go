package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timgluz/zuckerspiegel/feature"
)

func linearTrainingSet(rows int) *feature.TrainingSet {
	set := &feature.TrainingSet{
		Horizon: 30,
		Columns: []string{"glucose", "carbs"},
		X:       make([][]float64, rows),
		Y:       make([]float64, rows),
	}
	for i := 0; i < rows; i++ {
		glucose := 5.0 + 0.01*float64(i)
		carbs := float64(i % 50)
		set.X[i] = []float64{glucose, carbs}
		set.Y[i] = 1.2*glucose + 0.05*carbs
	}
	return set
}

func TestTrainProducesUsableSnapshot(t *testing.T) {
	set := linearTrainingSet(200)

	snapshot, err := Train(set, DefaultAlpha)
	require.NoError(t, err)

	assert.Equal(t, 30, snapshot.Horizon)
	assert.Equal(t, set.Columns, snapshot.FeatureColumns)
	assert.Equal(t, DefaultAlpha, snapshot.Alpha)
	assert.Equal(t, 160, snapshot.Metrics.TrainingSamples)
	assert.Equal(t, 40, snapshot.Metrics.TestSamples)
	assert.False(t, snapshot.TrainedAt.IsZero())

	// noise-free linear data should evaluate nearly perfectly
	assert.Less(t, snapshot.Metrics.MAE, 0.1)
	assert.Greater(t, snapshot.Metrics.R2, 0.95)

	predicted, err := snapshot.Predict([]float64{6.0, 20})
	require.NoError(t, err)
	assert.InDelta(t, 1.2*6.0+0.05*20, predicted, 0.2)
}

func TestTrainRejectsTinySets(t *testing.T) {
	_, err := Train(linearTrainingSet(5), DefaultAlpha)
	assert.Error(t, err)
}

func TestParseHorizons(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []int
		wantErr bool
	}{
		{"defaults on empty", "", []int{30, 60, 90, 120}, false},
		{"single", "45", []int{45}, false},
		{"list with spaces", "30, 60 ,120", []int{30, 60, 120}, false},
		{"not a number", "30,abc", nil, true},
		{"non-positive", "30,0", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHorizons(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
