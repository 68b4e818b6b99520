package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay bounds the valid range of a same-day minute offset.
const MinutesPerDay = 24 * 60

// TimeToMinutes converts a 24-hour "HH:MM" clock string to an absolute
// same-day minute offset in [0, 1439]. There is no timezone or day-rollover
// handling; slots live entirely within one weekday.
//
// Malformed input returns ErrMalformedTime (wrapped with detail) rather than
// a silent default.
func TimeToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q is not in HH:MM form", ErrMalformedTime, clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric hour in %q", ErrMalformedTime, clock)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: non-numeric minute in %q", ErrMalformedTime, clock)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTime, clock)
	}

	return hour*60 + minute, nil
}
