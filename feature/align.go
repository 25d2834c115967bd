package feature

import (
	"github.com/timgluz/zuckerspiegel/measurement"
)

// AlignContinuous joins a continuous source onto the grid: timestamps are
// floored to the minute, multiple readings in one minute are averaged, and
// gaps are forward-filled from the nearest earlier reading. Minutes before
// the first reading stay undefined, and an empty source yields an entirely
// undefined column — unknown is not zero for a physiological signal.
func AlignContinuous(grid *Grid, ts *measurement.Timeseries, name string) *Column {
	column := NewColumn(name, grid.Len())
	if ts.IsEmpty() {
		return column
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, sample := range ts.Samples {
		idx, ok := grid.Index(sample.Timestamp)
		if !ok {
			continue
		}
		sums[idx] += sample.Value
		counts[idx]++
	}

	for idx, sum := range sums {
		column.Set(idx, sum/float64(counts[idx]))
	}

	column.ForwardFill()
	return column
}

// AlignEvent joins an event source onto the grid: timestamps are floored to
// the minute and values landing in the same minute accumulate. Every
// unmatched minute is defined as exactly 0 — absence of an event is a hard
// fact, not missing data — so an empty source yields an all-zero column.
func AlignEvent(grid *Grid, ts *measurement.Timeseries, name string) *Column {
	column := NewZeroColumn(name, grid.Len())
	if ts.IsEmpty() {
		return column
	}

	for _, sample := range ts.Samples {
		idx, ok := grid.Index(sample.Timestamp)
		if !ok {
			continue
		}
		current, _ := column.Value(idx)
		column.Set(idx, current+sample.Value)
	}

	return column
}

// AlignDaily joins a once-per-day metric onto the grid by calendar date.
// dayShift is added to each record's date before joining; days without a
// record keep the most recent earlier day's value. Minutes whose date
// precedes the first known date stay undefined, as does the whole column
// for an empty source.
func AlignDaily(grid *Grid, ds *measurement.DailySeries, name string, dayShift int) *Column {
	column := NewColumn(name, grid.Len())
	if ds.IsEmpty() {
		return column
	}

	byDate := make(map[measurement.Date]float64, len(ds.Samples))
	for _, sample := range ds.Samples {
		byDate[sample.Date.AddDays(dayShift)] = sample.Value
	}

	// seed from the latest record before the grid's first day, so a
	// metric last reported before the window still covers its opening days
	var (
		current measurement.Date
		value   float64
		known   bool
	)
	firstDay := grid.Date(0)
	var seedDate measurement.Date
	for date, v := range byDate {
		if date.Before(firstDay) && (!known || seedDate.Before(date)) {
			seedDate, value, known = date, v, true
		}
	}

	for i := 0; i < grid.Len(); i++ {
		date := grid.Date(i)
		if i == 0 || date != current {
			current = date
			if v, ok := byDate[date]; ok {
				value = v
				known = true
			}
			// a day without a record keeps the prior day's value
		}
		if known {
			column.Set(i, value)
		}
	}

	return column
}
