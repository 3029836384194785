package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, assuming logger might not be configured when this is called.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// CurrentYear returns the current calendar year in local time
func CurrentYear() int {
	return time.Now().Year()
}

// FileTimestamp formats t the way report file names embed it (YYYYMMDD_HHMMSS)
func FileTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}
