package matching

import (
	"strings"
	"time"
)

const clockLayout = "3:04 PM"

// ParseClockTime converts a 12-hour clock string like "11:00 PM" into minutes
// since midnight. "12:00 AM" maps to 0 and "12:00 PM" to 720. Case and
// surrounding whitespace are tolerated; anything else fails with
// *InvalidTimeFormatError.
func ParseClockTime(value string) (int, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(value), " "))
	t, err := time.Parse(clockLayout, normalized)
	if err != nil {
		return 0, &InvalidTimeFormatError{Value: value}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minutesApart returns the distance in minutes between two clock strings,
// measured around the clock face, so "11:30 PM" and "12:30 AM" are 60 minutes
// apart, not 23 hours.
func minutesApart(a, b string) (int, error) {
	ma, err := ParseClockTime(a)
	if err != nil {
		return 0, err
	}
	mb, err := ParseClockTime(b)
	if err != nil {
		return 0, err
	}
	diff := ma - mb
	if diff < 0 {
		diff = -diff
	}
	if wrapped := 24*60 - diff; wrapped < diff {
		diff = wrapped
	}
	return diff, nil
}
