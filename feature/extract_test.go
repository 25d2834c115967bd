package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDropsUnusableRows(t *testing.T) {
	pipeline := NewPipeline(DefaultWindows(), []int{30}, testLogger())
	frame, err := pipeline.Build(syntheticDataset(t))
	require.NoError(t, err)

	columns := DefaultWindows().FeatureColumns()
	set, err := Extract(frame, columns, 30)
	require.NoError(t, err)

	// lag_60 is undefined for the first 60 minutes and the target for the
	// last 30, so usable rows run from minute 60 through len-31
	expected := frame.Len() - 60 - 30
	assert.Equal(t, expected, set.Len())
	assert.Len(t, set.X, set.Len())
	for _, row := range set.X {
		assert.Len(t, row, len(columns))
	}
}

func TestExtractMissingColumn(t *testing.T) {
	pipeline := NewPipeline(DefaultWindows(), []int{30}, testLogger())
	frame, err := pipeline.Build(syntheticDataset(t))
	require.NoError(t, err)

	_, err = Extract(frame, []string{"glucose", "no_such_column"}, 30)
	assert.Error(t, err)

	_, err = Extract(frame, []string{"glucose"}, 90) // horizon never built
	assert.Error(t, err)
}

func TestExtractDeterminism(t *testing.T) {
	// the full pipeline run twice on identical input yields identical (X, y)
	columns := DefaultWindows().FeatureColumns()

	build := func() *TrainingSet {
		pipeline := NewPipeline(DefaultWindows(), []int{30, 60}, testLogger())
		frame, err := pipeline.Build(syntheticDataset(t))
		require.NoError(t, err)

		set, err := Extract(frame, columns, 60)
		require.NoError(t, err)
		return set
	}

	first := build()
	second := build()

	require.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Y, second.Y)
	assert.Equal(t, first.X, second.X)
}

func TestExtractRowValuesMatchFrame(t *testing.T) {
	pipeline := NewPipeline(DefaultWindows(), []int{30}, testLogger())
	frame, err := pipeline.Build(syntheticDataset(t))
	require.NoError(t, err)

	set, err := Extract(frame, []string{"glucose", "carbs"}, 30)
	require.NoError(t, err)
	require.NotZero(t, set.Len())

	glucose, _ := frame.Column("glucose")
	target, _ := frame.Column(TargetName(30))

	// first usable row is minute 0 for this narrow column set
	v, ok := glucose.Value(0)
	require.True(t, ok)
	assert.Equal(t, v, set.X[0][0])

	y, ok := target.Value(0)
	require.True(t, ok)
	assert.Equal(t, y, set.Y[0])
}
