// Package log provides small helpers around log/slog for app components.
package log

import (
	"log/slog"
	"strings"
)

// SlogLevelInfoFromString maps a log_level variable to a slog.Level.
// Unknown or empty values fall back to Info.
func SlogLevelInfoFromString(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
