package feature

import "time"

// Lag returns a column holding the source value from n minutes earlier.
// The first n minutes have no history and stay undefined.
func Lag(src *Column, n int, name string) *Column {
	column := NewColumn(name, src.Len())
	for i := n; i < src.Len(); i++ {
		if v, ok := src.Value(i - n); ok {
			column.Set(i, v)
		}
	}
	return column
}

// Delta returns src[t] - src[t-n], defined only where both terms are.
func Delta(src *Column, n int, name string) *Column {
	column := NewColumn(name, src.Len())
	for i := n; i < src.Len(); i++ {
		now, okNow := src.Value(i)
		then, okThen := src.Value(i - n)
		if okNow && okThen {
			column.Set(i, now-then)
		}
	}
	return column
}

// RollingSum sums the trailing window of w minutes, expanding at the start:
// minute i covers max(0, i-w+1)..i, so the first w-1 minutes carry a
// partial sum instead of being undefined. Undefined source minutes are
// skipped; a window with no defined minutes stays undefined. These are flat
// additive accumulations, deliberately not pharmacokinetic decay curves.
func RollingSum(src *Column, w int, name string) *Column {
	return rollingAggregate(src, w, name, false)
}

// RollingMean averages the trailing window of w minutes with the same
// expanding-window policy as RollingSum.
func RollingMean(src *Column, w int, name string) *Column {
	return rollingAggregate(src, w, name, true)
}

func rollingAggregate(src *Column, w int, name string, mean bool) *Column {
	column := NewColumn(name, src.Len())

	var sum float64
	var count int
	for i := 0; i < src.Len(); i++ {
		if v, ok := src.Value(i); ok {
			sum += v
			count++
		}
		if leaving := i - w; leaving >= 0 {
			if v, ok := src.Value(leaving); ok {
				sum -= v
				count--
			}
		}

		if count == 0 {
			continue
		}
		if mean {
			column.Set(i, sum/float64(count))
		} else {
			column.Set(i, sum)
		}
	}

	return column
}

// HourOfDay derives the 0-23 hour directly from each grid minute.
func HourOfDay(grid *Grid, name string) *Column {
	column := NewColumn(name, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		column.Set(i, float64(grid.Time(i).Hour()))
	}
	return column
}

// WeekendIndicator is 1 on Saturday and Sunday, 0 otherwise.
func WeekendIndicator(grid *Grid, name string) *Column {
	column := NewColumn(name, grid.Len())
	for i := 0; i < grid.Len(); i++ {
		weekday := grid.Time(i).Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			column.Set(i, 1)
		} else {
			column.Set(i, 0)
		}
	}
	return column
}
