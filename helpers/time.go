package helpers

import "time"

// Config durations are integer milliseconds, zero means default.
func IntMillisDefault(x int, def time.Duration) time.Duration {
	if x == 0 {
		return def
	}
	return time.Duration(x) * time.Millisecond
}

