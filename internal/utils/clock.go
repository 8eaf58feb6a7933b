package utils

import "time"

const (
	utcTimestampLayoutConstant = "2006-01-02T15:04:05Z"
)

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the configured instant.
func (clock FixedClock) Now() time.Time {
	return clock.Instant
}

// ResolveClock substitutes SystemClock for a nil clock.
func ResolveClock(clock Clock) Clock {
	if clock == nil {
		return SystemClock{}
	}
	return clock
}

// FormatUTCTimestamp renders the instant in UTC with second precision and a Z suffix.
func FormatUTCTimestamp(instant time.Time) string {
	return instant.UTC().Truncate(time.Second).Format(utcTimestampLayoutConstant)
}
