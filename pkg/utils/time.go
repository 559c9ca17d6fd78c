package utils

import "time"

// Now returns the current UTC time at millisecond precision, the resolution
// persisted in snapshots.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
