// Package source describes the nine health data sources feeding the
// feature pipeline and fetches their raw records from storage.
package source

import (
	"github.com/timgluz/zuckerspiegel/measurement"
)

type Kind string

const (
	// KindContinuous signals hold their last known value between readings;
	// an empty source means unknown, never zero.
	KindContinuous Kind = "continuous"
	// KindEvent signals are quantities occurring at an instant; an empty
	// source is a hard zero.
	KindEvent Kind = "event"
	// KindDaily metrics carry one reading per calendar date.
	KindDaily Kind = "daily"
)

const (
	Glucose     = "glucose"
	Insulin     = "insulin"
	Food        = "food"
	HeartRate   = "heart_rate"
	Steps       = "steps"
	RestingHR   = "resting_hr"
	HRV         = "hrv"
	Sleep       = "sleep"
	Temperature = "temperature"
)

// Descriptor names one source, its fill semantics, and the value columns it
// contributes to the aligned frame. DayShift (daily sources only) is added
// to each record's date before joining; sleep uses +1 so that a night's
// sleep informs the following day.
type Descriptor struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Unit     string   `json:"unit"`
	Columns  []string `json:"columns"`
	DayShift int      `json:"day_shift,omitempty"`
}

// MeasurementName returns the storage key for one of the descriptor's
// columns. Single-column sources go by their plain name.
func (d Descriptor) MeasurementName(column string) string {
	if len(d.Columns) == 1 {
		return measurement.NewMeasurementName(d.Name)
	}
	return measurement.NewMeasurementName(d.Name, column)
}

// Catalog enumerates every supported source. Order is load-bearing only in
// that it fixes the column order of the aligned frame.
func Catalog() []Descriptor {
	return []Descriptor{
		{Name: Glucose, Kind: KindContinuous, Unit: "mmol/L", Columns: []string{"glucose"}},
		{Name: Insulin, Kind: KindEvent, Unit: "units", Columns: []string{"bolus_units", "basal_units"}},
		{Name: Food, Kind: KindEvent, Unit: "grams", Columns: []string{"carbs", "fiber", "protein", "fat"}},
		{Name: HeartRate, Kind: KindContinuous, Unit: "bpm", Columns: []string{"heart_rate"}},
		{Name: Steps, Kind: KindEvent, Unit: "steps", Columns: []string{"steps"}},
		{Name: RestingHR, Kind: KindDaily, Unit: "bpm", Columns: []string{"resting_hr"}},
		{Name: HRV, Kind: KindDaily, Unit: "ms", Columns: []string{"hrv_rmssd", "hrv_deep_rmssd"}},
		{Name: Sleep, Kind: KindDaily, Unit: "minutes", DayShift: 1,
			Columns: []string{"sleep_efficiency", "minutes_asleep", "deep_sleep_mins", "rem_sleep_mins"}},
		{Name: Temperature, Kind: KindDaily, Unit: "celsius", Columns: []string{"temp_skin"}},
	}
}

// FindDescriptor looks a source up by name.
func FindDescriptor(name string) (Descriptor, bool) {
	for _, d := range Catalog() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
