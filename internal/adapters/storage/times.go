package storage

import (
	"fmt"
	"time"
)

// ParseTime parses the timestamp formats stores write. SQLite stores text,
// and older rows may carry the space-separated form.
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

// FormatTime renders a timestamp the way stores persist it. Zero times
// become the empty string.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
