package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatClock converts a 24-hour "HH:MM" or "HH:MM:SS" string to 12-hour
// display. Hour 0 renders as 12 AM and hour 12 as 12 PM.
// POST: returns the input unchanged if it cannot be parsed
func FormatClock(clock string) string {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 {
		return clock
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return clock
	}
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%s %s", display, parts[1], period)
}

// FormatTimeRange renders an event's time for display: a range when both
// start and end are present, a single point for legacy events with only
// one stored time.
func FormatTimeRange(start, end string) string {
	if start == "" {
		return ""
	}
	if end == "" {
		return FormatClock(start)
	}
	return FormatClock(start) + " - " + FormatClock(end)
}
