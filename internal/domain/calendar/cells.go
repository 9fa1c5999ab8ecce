package calendar

import (
	"fmt"
	"time"
)

// MaxDotsPerDay caps the per-day event markers on the grid; days with more
// events get the overflow indicator instead of extra dots.
const MaxDotsPerDay = 3

// Cell describes one slot of the month grid. The grid starts with one
// placeholder per weekday offset of the 1st (Sunday-first weeks), then one
// cell per day of the month.
type Cell struct {
	Placeholder bool
	Day         int    // 1-based day of month, 0 for placeholders
	Date        string // YYYY-MM-DD, empty for placeholders
	IsToday     bool
	IsSelected  bool
	EventCount  int  // number of dots to draw, capped at MaxDotsPerDay
	Overflow    bool // more events than MaxDotsPerDay exist on this day
}

// Cells computes the ordered grid for the given month. The result is always
// weekdayOffset + daysInMonth entries long.
// PRE: month in [0,11]
// POST: leading cells are placeholders; day cells carry today/selection
// marks and capped event counts. Relationships to today and the selection
// are recomputed every call, never stored.
func Cells(month, year int, selected string, today time.Time, eventDates []string) []Cell {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday()) // Sunday = 0
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()

	counts := make(map[string]int, len(eventDates))
	for _, d := range eventDates {
		counts[d]++
	}
	todayStr := today.Format("2006-01-02")

	cells := make([]Cell, 0, offset+daysInMonth)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Placeholder: true})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
		n := counts[date]
		c := Cell{
			Day:        day,
			Date:       date,
			IsToday:    date == todayStr,
			IsSelected: date == selected,
			EventCount: n,
			Overflow:   n > MaxDotsPerDay,
		}
		if c.Overflow {
			c.EventCount = MaxDotsPerDay
		}
		cells = append(cells, c)
	}
	return cells
}

// WeekdayOffset returns the weekday of the 1st of the month (Sunday = 0).
// PRE: month in [0,11]
func WeekdayOffset(month, year int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// DaysInMonth returns the day count of the month, leap years included.
// PRE: month in [0,11]
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
