package model

import (
	"fmt"

	"github.com/timgluz/zuckerspiegel/feature"
)

// Population baselines substituted for daily biometrics the caller does
// not supply. They must match the values the training data carried for
// the same situation, otherwise live predictions drift from the fit.
const (
	defaultAvgHeartRate    = 70.0
	defaultRestingHR       = 60.0
	defaultHRVRMSSD        = 40.0
	defaultHRVDeepRMSSD    = 45.0
	defaultSleepEfficiency = 85.0
	defaultMinutesAsleep   = 420.0
	defaultDeepSleepMins   = 60.0
	defaultREMSleepMins    = 90.0
	defaultHour            = 12.0
)

// PredictionInput is a single point-in-time observation for the live
// path. Only Glucose is required; every other field falls back to a
// documented default: lags to the current glucose, deltas and event
// aggregates to zero, daily biometrics to population baselines.
type PredictionInput struct {
	Glucose float64 `json:"glucose"`

	GlucoseLag15   *float64 `json:"glucose_lag_15min,omitempty"`
	GlucoseLag30   *float64 `json:"glucose_lag_30min,omitempty"`
	GlucoseLag60   *float64 `json:"glucose_lag_60min,omitempty"`
	GlucoseDelta15 *float64 `json:"glucose_delta_15min,omitempty"`
	GlucoseDelta30 *float64 `json:"glucose_delta_30min,omitempty"`

	Carbs     *float64 `json:"carbs,omitempty"`
	Carbs2h   *float64 `json:"carbs_2h,omitempty"`
	Fiber2h   *float64 `json:"fiber_2h,omitempty"`
	Protein2h *float64 `json:"protein_2h,omitempty"`
	Fat2h     *float64 `json:"fat_2h,omitempty"`

	BolusUnits *float64 `json:"bolus_units,omitempty"`
	Bolus4h    *float64 `json:"bolus_4h,omitempty"`
	BasalUnits *float64 `json:"basal_units,omitempty"`
	Basal4h    *float64 `json:"basal_4h,omitempty"`

	Steps        *float64 `json:"steps,omitempty"`
	Steps1h      *float64 `json:"steps_1h,omitempty"`
	AvgHeartRate *float64 `json:"avg_hr_30min,omitempty"`

	Hour      *float64 `json:"hour,omitempty"`
	IsWeekend *float64 `json:"is_weekend,omitempty"`

	RestingHR       *float64 `json:"resting_hr,omitempty"`
	HRVRMSSD        *float64 `json:"hrv_rmssd,omitempty"`
	HRVDeepRMSSD    *float64 `json:"hrv_deep_rmssd,omitempty"`
	SleepEfficiency *float64 `json:"sleep_efficiency,omitempty"`
	MinutesAsleep   *float64 `json:"minutes_asleep,omitempty"`
	DeepSleepMins   *float64 `json:"deep_sleep_mins,omitempty"`
	REMSleepMins    *float64 `json:"rem_sleep_mins,omitempty"`
	TempSkin        *float64 `json:"temp_skin,omitempty"`
}

func orDefault(value *float64, fallback float64) float64 {
	if value != nil {
		return *value
	}
	return fallback
}

// Features assembles the ordered feature row, substituting defaults for
// every field the caller left unset.
func (in PredictionInput) Features(windows feature.Windows) ([]float64, error) {
	values := map[string]float64{
		"glucose": in.Glucose,

		feature.LagName(15):   orDefault(in.GlucoseLag15, in.Glucose),
		feature.LagName(30):   orDefault(in.GlucoseLag30, in.Glucose),
		feature.LagName(60):   orDefault(in.GlucoseLag60, in.Glucose),
		feature.DeltaName(15): orDefault(in.GlucoseDelta15, 0),
		feature.DeltaName(30): orDefault(in.GlucoseDelta30, 0),

		"carbs":       orDefault(in.Carbs, 0),
		"bolus_units": orDefault(in.BolusUnits, 0),
		"basal_units": orDefault(in.BasalUnits, 0),
		"steps":       orDefault(in.Steps, 0),

		"hour":       orDefault(in.Hour, defaultHour),
		"is_weekend": orDefault(in.IsWeekend, 0),

		"resting_hr":       orDefault(in.RestingHR, defaultRestingHR),
		"hrv_rmssd":        orDefault(in.HRVRMSSD, defaultHRVRMSSD),
		"hrv_deep_rmssd":   orDefault(in.HRVDeepRMSSD, defaultHRVDeepRMSSD),
		"sleep_efficiency": orDefault(in.SleepEfficiency, defaultSleepEfficiency),
		"minutes_asleep":   orDefault(in.MinutesAsleep, defaultMinutesAsleep),
		"deep_sleep_mins":  orDefault(in.DeepSleepMins, defaultDeepSleepMins),
		"rem_sleep_mins":   orDefault(in.REMSleepMins, defaultREMSleepMins),
		"temp_skin":        orDefault(in.TempSkin, 0),
	}

	values[feature.RollingName("carbs", windows.FoodWindow)] = orDefault(in.Carbs2h, 0)
	values[feature.RollingName("fiber", windows.FoodWindow)] = orDefault(in.Fiber2h, 0)
	values[feature.RollingName("protein", windows.FoodWindow)] = orDefault(in.Protein2h, 0)
	values[feature.RollingName("fat", windows.FoodWindow)] = orDefault(in.Fat2h, 0)
	values[feature.RollingName("bolus", windows.InsulinWindow)] = orDefault(in.Bolus4h, 0)
	values[feature.RollingName("basal", windows.InsulinWindow)] = orDefault(in.Basal4h, 0)
	values[feature.RollingName("steps", windows.StepsWindow)] = orDefault(in.Steps1h, 0)
	values[fmt.Sprintf("avg_hr_%dmin", windows.HeartRateWindow)] = orDefault(in.AvgHeartRate, defaultAvgHeartRate)

	columns := windows.FeatureColumns()
	row := make([]float64, len(columns))
	for j, name := range columns {
		value, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("no value or default for feature %q", name)
		}
		row[j] = value
	}
	return row, nil
}

// PredictAll runs every loaded horizon against one input. A horizon that
// fails is reported in the failures map and does not abort the others.
func (r *Registry) PredictAll(input PredictionInput, windows feature.Windows) (map[int]float64, map[int]string) {
	predictions := make(map[int]float64)
	failures := make(map[int]string)

	row, err := input.Features(windows)
	if err != nil {
		for _, horizon := range r.Horizons() {
			failures[horizon] = err.Error()
		}
		return predictions, failures
	}

	for _, horizon := range r.Horizons() {
		snapshot, err := r.Get(horizon)
		if err != nil {
			failures[horizon] = err.Error()
			continue
		}

		predicted, err := snapshot.Predict(row)
		if err != nil {
			r.logger.Warn("Prediction failed", "horizon", horizon, "error", err)
			failures[horizon] = err.Error()
			continue
		}
		predictions[horizon] = predicted
	}

	return predictions, failures
}
