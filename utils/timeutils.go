package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AnyTime is the label shown when no time filter is applied
const AnyTime = "(any time)"

// Iso8601Now returns the current time in ISO8601 format
func Iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Iso8601FromTime formats t in UTC, or returns "" for the zero time
func Iso8601FromTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// FormatMinuteOfDay renders minutes since midnight as a short en-US time
// such as "8:00 AM". Negative values mean no filter.
func FormatMinuteOfDay(minutes int) string {
	if minutes < 0 {
		return AnyTime
	}
	minutes %= 24 * 60
	return time.Date(2000, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("3:04 PM")
}

// ParseClock parses "HH:MM" into minutes since midnight. An empty string or
// "any" returns -1.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "any" {
		return -1, nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
