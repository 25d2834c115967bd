package feature

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timgluz/zuckerspiegel/measurement"
)

var testBase = measurement.Epoch(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).Unix())

func minuteSeries(name string, points map[int]float64) *measurement.Timeseries {
	ts := &measurement.Timeseries{Name: name}
	for minute, value := range points {
		ts.Samples = append(ts.Samples, measurement.Sample{
			Timestamp: testBase + measurement.Epoch(minute*60),
			Value:     value,
		})
	}
	return ts
}

func TestBuildGrid(t *testing.T) {
	grid, err := BuildGrid(minuteSeries("glucose", map[int]float64{0: 5.0, 10: 6.0}))
	require.NoError(t, err)

	// inclusive of both ends: duration minutes + 1
	assert.Equal(t, 11, grid.Len())
	assert.Equal(t, testBase, grid.Epoch(0))
	assert.Equal(t, testBase+600, grid.Epoch(10))

	// strictly increasing, one minute apart
	for i := 1; i < grid.Len(); i++ {
		assert.Equal(t, measurement.Epoch(60), grid.Epoch(i)-grid.Epoch(i-1))
	}
}

func TestBuildGridFloorsBounds(t *testing.T) {
	ts := &measurement.Timeseries{
		Samples: []measurement.Sample{
			{Timestamp: testBase + 42, Value: 5.0},  // 00:00:42
			{Timestamp: testBase + 130, Value: 5.5}, // 00:02:10
		},
	}

	grid, err := BuildGrid(ts)
	require.NoError(t, err)

	assert.Equal(t, 3, grid.Len())
	assert.Equal(t, testBase, grid.Epoch(0))
}

func TestBuildGridEmptyGlucose(t *testing.T) {
	_, err := BuildGrid(&measurement.Timeseries{})
	assert.ErrorIs(t, err, ErrNoReferenceSignal)

	_, err = BuildGrid(nil)
	assert.ErrorIs(t, err, ErrNoReferenceSignal)
}

func TestGridIndex(t *testing.T) {
	grid, err := BuildGrid(minuteSeries("glucose", map[int]float64{0: 5.0, 10: 6.0}))
	require.NoError(t, err)

	idx, ok := grid.Index(testBase + 5*60 + 59) // 00:05:59 floors onto minute 5
	require.True(t, ok)
	assert.Equal(t, 5, idx)

	_, ok = grid.Index(testBase - 60)
	assert.False(t, ok)

	_, ok = grid.Index(testBase + 11*60)
	assert.False(t, ok)
}

func TestGridDate(t *testing.T) {
	// grid crossing midnight
	ts := &measurement.Timeseries{
		Samples: []measurement.Sample{
			{Timestamp: testBase + 23*3600 + 59*60, Value: 5.0}, // 23:59
			{Timestamp: testBase + 24*3600 + 60, Value: 5.5},    // 00:01 next day
		},
	}

	grid, err := BuildGrid(ts)
	require.NoError(t, err)

	require.Equal(t, 3, grid.Len())
	assert.Equal(t, "2024-01-01", grid.Date(0).String())
	assert.Equal(t, "2024-01-02", grid.Date(1).String())
	assert.Equal(t, "2024-01-02", grid.Date(2).String())
}
