package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetShiftsFuture(t *testing.T) {
	src := definedColumn("glucose", 5.0, 5.1, 5.2, 5.3, 5.4)
	column := Target(src, 2)

	assert.Equal(t, "glucose_target_2min", column.Name())

	for i := 0; i < 3; i++ {
		v, ok := column.Value(i)
		require.True(t, ok)
		expected, _ := src.Value(i + 2)
		assert.Equal(t, expected, v)
	}

	// no future data beyond the frame's end
	assert.False(t, column.Defined(3))
	assert.False(t, column.Defined(4))
}

func TestTargetHorizonNearFrameLength(t *testing.T) {
	// horizon 30 with 40 aligned minutes: defined for 0..9 only
	values := make([]float64, 40)
	for i := range values {
		values[i] = float64(i)
	}
	src := definedColumn("glucose", values...)
	column := Target(src, 30)

	for i := 0; i < 10; i++ {
		v, ok := column.Value(i)
		require.True(t, ok, "index %d", i)
		assert.Equal(t, float64(i+30), v)
	}
	for i := 10; i < 40; i++ {
		assert.False(t, column.Defined(i), "index %d", i)
	}
}

func TestTargetUndefinedWhereGlucoseUndefined(t *testing.T) {
	src := NewColumn("glucose", 5)
	src.Set(3, 6.0)

	column := Target(src, 2)

	v, ok := column.Value(1)
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
	assert.False(t, column.Defined(0)) // glucose at minute 2 is undefined
	assert.False(t, column.Defined(2))
}
