package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Overlaps reports whether the half-open minute intervals [aStart, aEnd) and
// [bStart, bEnd) share any minute. Back-to-back intervals, one ending exactly
// when the other starts, do not overlap. This predicate is the single
// authority for schedule conflict detection.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Window is a booked interval on a field. Ref identifies the slot that owns
// it so conflict errors can name the clash.
type Window struct {
	Start int
	End   int
	Ref   string
}

// FirstConflict returns the first window overlapping [start, end).
func FirstConflict(start, end int, existing []Window) (Window, bool) {
	for _, w := range existing {
		if Overlaps(start, end, w.Start, w.End) {
			return w, true
		}
	}

	return Window{}, false
}

const dateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD calendar date and returns it in the same
// normalized form.
func ParseDate(value string) (string, error) {
	v := strings.TrimSpace(value)
	parsed, err := time.Parse(dateLayout, v)
	if err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD)", value)
	}

	return parsed.Format(dateLayout), nil
}

// ParseClock converts a zero-padded HH:mm 24-hour wall clock value to minutes
// since midnight (0..1439).
func ParseClock(value string) (int, error) {
	v := strings.TrimSpace(value)
	if len(v) != 5 || v[2] != ':' || !allDigits(v[:2]) || !allDigits(v[3:]) {
		return 0, fmt.Errorf("invalid time %q (use HH:mm)", value)
	}

	hour, _ := strconv.Atoi(v[:2])
	minute, _ := strconv.Atoi(v[3:])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q (use HH:mm)", value)
	}

	return hour*60 + minute, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return len(s) > 0
}
