package calendar

import (
	"testing"
	"time"
)

// TestCells_LengthAllMonths tests that the grid is always
// weekdayOffset + daysInMonth cells, for every month of a leap year and a
// common year, with the leading cells as placeholders.
func TestCells_LengthAllMonths(t *testing.T) {
	today := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	for _, year := range []int{2024, 2026} { // 2024 is a leap year
		for month := 0; month <= 11; month++ {
			cells := Cells(month, year, "", today, nil)
			offset := WeekdayOffset(month, year)
			days := DaysInMonth(month, year)
			if len(cells) != offset+days {
				t.Errorf("%d/%d: len = %d, want %d+%d", month, year, len(cells), offset, days)
			}
			for i := 0; i < offset; i++ {
				if !cells[i].Placeholder {
					t.Errorf("%d/%d: cell %d should be a placeholder", month, year, i)
				}
			}
			for i := offset; i < len(cells); i++ {
				if cells[i].Placeholder || cells[i].Day != i-offset+1 {
					t.Errorf("%d/%d: cell %d has day %d, want %d", month, year, i, cells[i].Day, i-offset+1)
				}
			}
		}
	}
}

// TestCells_LeapFebruary tests February day counts either side of a leap year.
func TestCells_LeapFebruary(t *testing.T) {
	if got := DaysInMonth(1, 2024); got != 29 {
		t.Errorf("Feb 2024 = %d days, want 29", got)
	}
	if got := DaysInMonth(1, 2026); got != 28 {
		t.Errorf("Feb 2026 = %d days, want 28", got)
	}
}

// TestCells_TodayAndSelection tests the per-day marks.
func TestCells_TodayAndSelection(t *testing.T) {
	today := time.Date(2026, time.March, 15, 23, 59, 0, 0, time.UTC)
	cells := Cells(2, 2026, "2026-03-20", today, nil)

	var todayCount, selectedCount int
	for _, c := range cells {
		if c.IsToday {
			todayCount++
			if c.Day != 15 {
				t.Errorf("IsToday on day %d, want 15", c.Day)
			}
		}
		if c.IsSelected {
			selectedCount++
			if c.Day != 20 {
				t.Errorf("IsSelected on day %d, want 20", c.Day)
			}
		}
	}
	if todayCount != 1 || selectedCount != 1 {
		t.Fatalf("today=%d selected=%d, want exactly one of each", todayCount, selectedCount)
	}

	// A different visible month carries no today mark.
	for _, c := range Cells(3, 2026, "", today, nil) {
		if c.IsToday {
			t.Fatal("April grid must not mark today for a March date")
		}
	}
}

// TestCells_EventDots tests dot counts and the overflow cap.
func TestCells_EventDots(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	dates := []string{
		"2026-03-05",
		"2026-03-10", "2026-03-10",
		"2026-03-12", "2026-03-12", "2026-03-12", "2026-03-12", "2026-03-12",
	}
	cells := Cells(2, 2026, "", today, dates)

	byDay := make(map[int]Cell)
	for _, c := range cells {
		if !c.Placeholder {
			byDay[c.Day] = c
		}
	}

	if c := byDay[5]; c.EventCount != 1 || c.Overflow {
		t.Errorf("day 5: count=%d overflow=%v, want 1/false", c.EventCount, c.Overflow)
	}
	if c := byDay[10]; c.EventCount != 2 || c.Overflow {
		t.Errorf("day 10: count=%d overflow=%v, want 2/false", c.EventCount, c.Overflow)
	}
	if c := byDay[12]; c.EventCount != MaxDotsPerDay || !c.Overflow {
		t.Errorf("day 12: count=%d overflow=%v, want %d/true", c.EventCount, c.Overflow, MaxDotsPerDay)
	}
	if c := byDay[6]; c.EventCount != 0 || c.Overflow {
		t.Errorf("day 6: count=%d overflow=%v, want 0/false", c.EventCount, c.Overflow)
	}
}
