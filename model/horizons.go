package model

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultHorizons are the prediction horizons in minutes.
var DefaultHorizons = []int{30, 60, 90, 120}

// ParseHorizons parses a comma-separated list of horizon minutes,
// e.g. "30,60,90,120". An empty string yields the defaults.
func ParseHorizons(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return DefaultHorizons, nil
	}

	parts := strings.Split(value, ",")
	horizons := make([]int, 0, len(parts))
	for _, part := range parts {
		horizon, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid horizon %q: %w", part, err)
		}
		if horizon <= 0 {
			return nil, fmt.Errorf("horizon must be positive, got %d", horizon)
		}
		horizons = append(horizons, horizon)
	}
	return horizons, nil
}
