package calendar

import "testing"

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"00:30", "12:30 AM"},
		{"00:00", "12:00 AM"},
		{"09:05", "9:05 AM"},
		{"11:59", "11:59 AM"},
		{"12:00", "12:00 PM"},
		{"12:30", "12:30 PM"},
		{"13:15", "1:15 PM"},
		{"23:45", "11:45 PM"},
		{"14:00:00", "2:00 PM"},
		{"", ""},
		{"not a time", "not a time"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.in); got != tc.want {
			t.Errorf("FormatClock(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		start, end string
		want       string
	}{
		{"09:00", "10:30", "9:00 AM - 10:30 AM"},
		{"13:00", "", "1:00 PM"},
		{"", "10:00", ""},
		{"23:00", "00:30", "11:00 PM - 12:30 AM"},
	}
	for _, tc := range tests {
		if got := FormatTimeRange(tc.start, tc.end); got != tc.want {
			t.Errorf("FormatTimeRange(%q, %q) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}
