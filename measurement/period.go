package measurement

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/sosodev/duration"
)

var ErrInvalidEpoch = fmt.Errorf("invalid epoch value")

func CurrentEpoch() Epoch {
	return Epoch(time.Now().Unix())
}

// Period is a half-open-ended time range in epoch seconds, used to scope
// which raw samples a training run reads.
type Period struct {
	Start Epoch `json:"start"`
	End   Epoch `json:"end"`
}

func (p *Period) IsValid() bool {
	return p.Start < p.End
}

func (p *Period) Contains(e Epoch) bool {
	return e >= p.Start && e <= p.End
}

func (p *Period) String() string {
	dtDuration := time.Unix(int64(p.End), 0).Sub(time.Unix(int64(p.Start), 0))

	isoDuration := duration.FromTimeDuration(dtDuration)
	return isoDuration.String()
}

// NewFromISO8601Duration builds a Period ending now whose length is given as
// an ISO 8601 duration, e.g. "P30D" for the last thirty days.
func NewFromISO8601Duration(periodStr string) (*Period, error) {
	end := CurrentEpoch()
	start, err := ParseISO8601Duration(periodStr, end)
	if err != nil {
		return nil, err
	}

	return &Period{
		Start: start,
		End:   end,
	}, nil
}

func ParseEpoch(epochString string) (Epoch, error) {
	epoch, err := strconv.ParseInt(epochString, 10, 64)
	if err != nil {
		return 0, err
	}

	if epoch < 0 {
		return 0, ErrInvalidEpoch
	}

	return Epoch(epoch), nil
}

// ParseISO8601Duration returns the epoch that lies the given duration before
// `until`, clamped at zero.
func ParseISO8601Duration(iso8601 string, until Epoch) (Epoch, error) {
	d, err := duration.Parse(iso8601)
	if err != nil {
		return 0, err
	}

	durationSeconds := math.Ceil(d.ToTimeDuration().Seconds())
	start := until - Epoch(durationSeconds)
	if start < 0 {
		start = 0
	}

	return start, nil
}

func ParseRFC3339(timestamp string) (Epoch, error) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return 0, err
	}

	return Epoch(t.Unix()), nil
}
