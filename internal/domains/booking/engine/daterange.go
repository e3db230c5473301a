package engine

import (
	"fmt"
	"time"

	"inn/shared/constant"
)

// ParseDate parses a calendar date (YYYY-MM-DD) and normalizes it to
// midnight UTC so comparisons are independent of the server timezone.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(constant.CalendarDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q: %w", value, err)
	}

	return Normalize(parsed), nil
}

// Normalize truncates a timestamp to its calendar date at midnight UTC.
func Normalize(t time.Time) time.Time {
	year, month, day := t.UTC().Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open date ranges [aIn, aOut) and
// [bIn, bOut) share at least one night. Back-to-back stays, where one
// check-out equals the other check-in, do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Nights returns the number of nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(Normalize(checkOut).Sub(Normalize(checkIn)) / (24 * time.Hour))
}
