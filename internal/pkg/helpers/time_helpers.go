package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returning the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
