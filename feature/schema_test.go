package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFeatureColumns(t *testing.T) {
	// the model input schema shared by batch extraction and the live path;
	// order matters, so this is asserted verbatim
	expected := []string{
		"glucose",
		"glucose_lag_15min", "glucose_lag_30min", "glucose_lag_60min",
		"glucose_delta_15min", "glucose_delta_30min",
		"carbs", "carbs_2h", "fiber_2h", "protein_2h", "fat_2h",
		"bolus_units", "bolus_4h", "basal_units", "basal_4h",
		"steps", "steps_1h", "avg_hr_30min",
		"hour", "is_weekend",
		"resting_hr", "hrv_rmssd", "hrv_deep_rmssd",
		"sleep_efficiency", "minutes_asleep", "deep_sleep_mins", "rem_sleep_mins",
		"temp_skin",
	}

	assert.Equal(t, expected, DefaultWindows().FeatureColumns())
}

func TestRollingName(t *testing.T) {
	testCases := []struct {
		column   string
		minutes  int
		expected string
	}{
		{"carbs", 120, "carbs_2h"},
		{"steps", 60, "steps_1h"},
		{"bolus", 240, "bolus_4h"},
		{"steps", 45, "steps_45min"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, RollingName(tc.column, tc.minutes))
	}
}
