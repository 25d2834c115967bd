package feature

import "fmt"

// Windows groups every lag, delta, and rolling-window size used by the
// pipeline. Training and serving must use the same values, otherwise the
// column schema silently drifts between the two paths.
type Windows struct {
	Lags   []int `json:"lags"`   // glucose lag minutes
	Deltas []int `json:"deltas"` // glucose rate-of-change minutes

	StepsWindow     int `json:"steps_window"`      // trailing activity sum
	FoodWindow      int `json:"food_window"`       // trailing nutrition sums
	InsulinWindow   int `json:"insulin_window"`    // trailing insulin sums
	HeartRateWindow int `json:"heart_rate_window"` // trailing heart rate mean
}

func DefaultWindows() Windows {
	return Windows{
		Lags:            []int{15, 30, 60},
		Deltas:          []int{15, 30},
		StepsWindow:     60,
		FoodWindow:      120,
		InsulinWindow:   240,
		HeartRateWindow: 30,
	}
}

func LagName(minutes int) string {
	return fmt.Sprintf("glucose_lag_%dmin", minutes)
}

func DeltaName(minutes int) string {
	return fmt.Sprintf("glucose_delta_%dmin", minutes)
}

// RollingName appends a window suffix to a column, e.g. ("carbs", 120) ->
// "carbs_2h" and ("steps", 60) -> "steps_1h".
func RollingName(column string, minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%s_%dh", column, minutes/60)
	}
	return fmt.Sprintf("%s_%dmin", column, minutes)
}

// FeatureColumns is the fixed, ordered model input schema. The batch
// extractor and the live single-point path must both produce exactly these
// columns in exactly this order.
func (w Windows) FeatureColumns() []string {
	columns := []string{"glucose"}

	for _, lag := range w.Lags {
		columns = append(columns, LagName(lag))
	}
	for _, delta := range w.Deltas {
		columns = append(columns, DeltaName(delta))
	}

	columns = append(columns, "carbs")
	for _, col := range []string{"carbs", "fiber", "protein", "fat"} {
		columns = append(columns, RollingName(col, w.FoodWindow))
	}

	columns = append(columns,
		"bolus_units", RollingName("bolus", w.InsulinWindow),
		"basal_units", RollingName("basal", w.InsulinWindow),
	)

	columns = append(columns,
		"steps", RollingName("steps", w.StepsWindow),
		fmt.Sprintf("avg_hr_%dmin", w.HeartRateWindow),
	)

	columns = append(columns, "hour", "is_weekend")

	columns = append(columns,
		"resting_hr", "hrv_rmssd", "hrv_deep_rmssd",
		"sleep_efficiency", "minutes_asleep", "deep_sleep_mins", "rem_sleep_mins",
		"temp_skin",
	)

	return columns
}
