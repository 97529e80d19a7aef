// Package biztime centralizes clock access so persistence and token code
// agree on UTC timestamps.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ToUTC normalizes a timestamp to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}
