package measurement

import (
	"strings"

	"github.com/gosimple/slug"
)

type Epoch int64

// MinuteEpoch floors an epoch to the start of its minute.
func (e Epoch) MinuteEpoch() Epoch {
	return e - e%60
}

type Measurement struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit"` // e.g. "mmol/L", "units", "grams", "bpm"
}

// NewMeasurementName builds a canonical measurement key from source and
// column names, e.g. ("food", "carbs") -> "food-carbs". Writers and readers
// must agree on keys, so both sides go through this helper.
func NewMeasurementName(keys ...string) string {
	return slug.Make(strings.Join(keys, "-"))
}

type Sample struct {
	ID            int64   `json:"id"`
	MeasurementID int64   `json:"measurement_id"`
	Value         float64 `json:"value"`
	Timestamp     Epoch   `json:"timestamp"` // epoch seconds, UTC
}

type Timeseries struct {
	Name    string   `json:"name"`
	Samples []Sample `json:"samples"`
	Start   Epoch    `json:"start"`
	End     Epoch    `json:"end"`

	Measurement *Measurement `json:"measurement,omitempty"`
}

// IsEmpty reports whether the series carries no samples at all. What
// emptiness means is up to the caller: for event sources it is a hard zero,
// for continuous sources it means unknown.
func (ts *Timeseries) IsEmpty() bool {
	return ts == nil || len(ts.Samples) == 0
}

// Span returns the earliest and latest sample timestamps. The second return
// is false for an empty series. Samples are not assumed to be sorted.
func (ts *Timeseries) Span() (first, last Epoch, ok bool) {
	if ts.IsEmpty() {
		return 0, 0, false
	}

	first, last = ts.Samples[0].Timestamp, ts.Samples[0].Timestamp
	for _, s := range ts.Samples[1:] {
		if s.Timestamp < first {
			first = s.Timestamp
		}
		if s.Timestamp > last {
			last = s.Timestamp
		}
	}
	return first, last, true
}
