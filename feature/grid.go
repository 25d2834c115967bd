// Package feature turns irregular raw source records into a per-minute
// feature matrix: a minute grid spanning the glucose series, aligned source
// columns, derived lag/delta/rolling columns, and per-horizon targets.
package feature

import (
	"fmt"
	"time"

	"github.com/timgluz/zuckerspiegel/measurement"
)

// ErrNoReferenceSignal means the glucose series was empty. Glucose is the
// reference signal: without it there is no valid span to build a grid for.
var ErrNoReferenceSignal = fmt.Errorf("no reference signal: glucose series is empty")

// Grid is the canonical per-minute timeline. It is contiguous and strictly
// increasing with one entry per minute, inclusive of both ends, so its
// length is always duration minutes plus one.
type Grid struct {
	start   measurement.Epoch // floored to the minute
	minutes int
}

// BuildGrid derives the grid span from the glucose series. Both bounds are
// floored to the minute so raw samples land exactly on grid entries.
func BuildGrid(glucose *measurement.Timeseries) (*Grid, error) {
	first, last, ok := glucose.Span()
	if !ok {
		return nil, ErrNoReferenceSignal
	}

	start := first.MinuteEpoch()
	end := last.MinuteEpoch()

	return &Grid{
		start:   start,
		minutes: int((end-start)/60) + 1,
	}, nil
}

func (g *Grid) Len() int {
	return g.minutes
}

// Epoch returns the timestamp of minute index i.
func (g *Grid) Epoch(i int) measurement.Epoch {
	return g.start + measurement.Epoch(i*60)
}

func (g *Grid) Time(i int) time.Time {
	return time.Unix(int64(g.Epoch(i)), 0).UTC()
}

func (g *Grid) Date(i int) measurement.Date {
	return measurement.DateOfEpoch(g.Epoch(i))
}

// Index maps an epoch to its minute index. The epoch is floored first; the
// second return is false when it falls outside the grid.
func (g *Grid) Index(e measurement.Epoch) (int, bool) {
	idx := int((e.MinuteEpoch() - g.start) / 60)
	if idx < 0 || idx >= g.minutes {
		return 0, false
	}
	return idx, true
}
