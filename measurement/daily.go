package measurement

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidDate = fmt.Errorf("invalid date value")

// Date is a calendar day in UTC. Daily biometrics are attributed to a date
// rather than a timestamp, so joins against them go through this type.
type Date struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

func DateOfEpoch(e Epoch) Date {
	return DateOf(time.Unix(int64(e), 0))
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %s", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Epoch() Epoch {
	return Epoch(d.Time().Unix())
}

// AddDays shifts the date by a signed number of days. Used to attribute a
// night's sleep to the day it predicts rather than the day it ended.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

type DailySample struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// DailySeries is one once-per-day metric, at most one sample per date.
type DailySeries struct {
	Name    string        `json:"name"`
	Samples []DailySample `json:"samples"`
}

func (ds *DailySeries) IsEmpty() bool {
	return ds == nil || len(ds.Samples) == 0
}

// NewDailySeriesFromTimeseries converts a timeseries of midnight-stamped
// samples into a daily series. Multiple samples landing on the same date
// keep the last one seen, matching the one-reading-per-day contract.
func NewDailySeriesFromTimeseries(ts *Timeseries) *DailySeries {
	if ts == nil {
		return &DailySeries{}
	}

	byDate := make(map[Date]float64, len(ts.Samples))
	order := make([]Date, 0, len(ts.Samples))
	for _, s := range ts.Samples {
		date := DateOfEpoch(s.Timestamp)
		if _, seen := byDate[date]; !seen {
			order = append(order, date)
		}
		byDate[date] = s.Value
	}

	samples := make([]DailySample, 0, len(order))
	for _, date := range order {
		samples = append(samples, DailySample{Date: date, Value: byDate[date]})
	}

	return &DailySeries{Name: ts.Name, Samples: samples}
}
