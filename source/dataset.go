package source

import (
	"github.com/timgluz/zuckerspiegel/measurement"
)

// Dataset is one training window's worth of raw records, keyed the way the
// aligners consume them: continuous series and per-column event series by
// feature column name, daily series grouped under their source descriptor
// so the day-shift rule stays attached.
type Dataset struct {
	Period measurement.Period

	Glucose   *measurement.Timeseries
	HeartRate *measurement.Timeseries

	// Events maps feature column name -> series, e.g. "carbs", "bolus_units".
	Events map[string]*measurement.Timeseries

	// Daily maps feature column name -> once-per-day series.
	Daily map[string]*measurement.DailySeries
}

func NewDataset(period measurement.Period) *Dataset {
	return &Dataset{
		Period: period,
		Events: make(map[string]*measurement.Timeseries),
		Daily:  make(map[string]*measurement.DailySeries),
	}
}

// HasReferenceSignal reports whether the glucose series carries any data.
// Without it there is no valid minute grid.
func (ds *Dataset) HasReferenceSignal() bool {
	return !ds.Glucose.IsEmpty()
}
