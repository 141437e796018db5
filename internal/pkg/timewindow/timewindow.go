// Package timewindow provides pure helpers for comparing same-day wall-clock
// windows. All comparisons use integer minutes since midnight; cross-midnight
// windows are not supported.
package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidClock = errors.New("invalid clock value, expected HH:MM")

// ParseClock converts a "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, ErrInvalidClock
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidClock
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidClock
	}

	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether window a conflicts with window b after widening b
// by buffer minutes on both sides. Inputs are minutes since midnight with
// start < end within the same day.
func Overlaps(aStart, aEnd, bStart, bEnd, buffer int) bool {
	bufStart := bStart - buffer
	bufEnd := bEnd + buffer

	if aStart >= bufStart && aStart < bufEnd {
		return true
	}
	if aEnd > bufStart && aEnd <= bufEnd {
		return true
	}
	// a fully contains the widened b window.
	return aStart <= bufStart && aEnd >= bufEnd
}

// StartsInFuture reports whether the instant formed by meetingDate plus
// startMinute is strictly after now. A start that equals now does not count
// as future.
func StartsInFuture(meetingDate time.Time, startMinute int, now time.Time) bool {
	start := time.Date(
		meetingDate.Year(), meetingDate.Month(), meetingDate.Day(),
		startMinute/60, startMinute%60, 0, 0, now.Location(),
	)
	return start.After(now)
}
