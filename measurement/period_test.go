package measurement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISO8601Duration(t *testing.T) {
	testCases := []struct {
		name        string
		iso8601     string
		until       Epoch
		expected    Epoch
		expectError bool
	}{
		{
			name:     "thirty days",
			iso8601:  "P30D",
			until:    Epoch(30 * 24 * 3600),
			expected: 0,
		},
		{
			name:     "one hour",
			iso8601:  "PT1H",
			until:    Epoch(7200),
			expected: Epoch(3600),
		},
		{
			name:     "clamps at zero",
			iso8601:  "P10D",
			until:    Epoch(3600),
			expected: 0,
		},
		{
			name:        "garbage input",
			iso8601:     "10 days",
			until:       Epoch(3600),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, err := ParseISO8601Duration(tc.iso8601, tc.until)
			if tc.expectError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, start)
		})
	}
}

func TestParseEpoch(t *testing.T) {
	epoch, err := ParseEpoch("1700000000")
	require.NoError(t, err)
	assert.Equal(t, Epoch(1700000000), epoch)

	_, err = ParseEpoch("-5")
	assert.ErrorIs(t, err, ErrInvalidEpoch)

	_, err = ParseEpoch("not-a-number")
	assert.Error(t, err)
}

func TestPeriodContains(t *testing.T) {
	period := Period{Start: 100, End: 200}

	assert.True(t, period.IsValid())
	assert.True(t, period.Contains(100))
	assert.True(t, period.Contains(200))
	assert.False(t, period.Contains(99))
	assert.False(t, period.Contains(201))
}

func TestMinuteEpoch(t *testing.T) {
	assert.Equal(t, Epoch(120), Epoch(120).MinuteEpoch())
	assert.Equal(t, Epoch(120), Epoch(179).MinuteEpoch())
	assert.Equal(t, Epoch(0), Epoch(59).MinuteEpoch())
}
