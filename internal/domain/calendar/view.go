// Package calendar owns the month-view state and the event-filter rules for
// the events page: which month is visible, which date (if any) is selected,
// and which subset of events that implies.
package calendar

import (
	"strconv"
	"time"

	"mindbridge/internal/domain/event"
)

// Months are held zero-based (January = 0) to match the wire format the
// events page navigates with.
const (
	MinMonth = 0
	MaxMonth = 11
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ViewState holds the calendar view for one events page.
// INVARIANT: Month is always in [0,11]; Year tracks month rollover exactly.
type ViewState struct {
	Month        int    // 0-11, January = 0
	Year         int
	SelectedDate string // YYYY-MM-DD, empty means no date filter
}

// New returns a ViewState showing the month containing now, with no selection.
func New(now time.Time) ViewState {
	return ViewState{Month: int(now.Month()) - 1, Year: now.Year()}
}

// ChangeMonth shifts the visible month by delta, rolling the year as needed.
// Supports arbitrary deltas, not just ±1.
// POST: Month in [0,11]; never fails
func (v *ViewState) ChangeMonth(delta int) {
	total := v.Year*12 + v.Month + delta
	v.Year = total / 12
	v.Month = total % 12
	if v.Month < 0 {
		v.Month += 12
		v.Year--
	}
}

// SelectDate sets the date filter, replacing any previous selection.
// PRE: date is a YYYY-MM-DD string
func (v *ViewState) SelectDate(date string) {
	v.SelectedDate = date
}

// ClearSelection removes the date filter, restoring the default
// upcoming-events view.
func (v *ViewState) ClearSelection() {
	v.SelectedDate = ""
}

// Title returns the "March 2026" header for the visible month.
// PRE: Month in [0,11]
func (v ViewState) Title() string {
	return monthNames[v.Month] + " " + strconv.Itoa(v.Year)
}

// VisibleEvents derives the event subset the page shows. A selected date is
// an explicit override: it returns every event on that date regardless of
// the active flag or whether it has passed. With no selection the default
// filter applies: active events dated today or later, ascending by date,
// input order preserved for equal dates.
// PRE: today is a YYYY-MM-DD string
// POST: input slice is not mutated
func (v ViewState) VisibleEvents(events []event.Event, today string) []event.Event {
	var out []event.Event
	if v.SelectedDate != "" {
		for _, e := range events {
			if e.Date == v.SelectedDate {
				out = append(out, e)
			}
		}
		return out
	}
	for _, e := range events {
		if e.Active && e.Date >= today {
			out = append(out, e)
		}
	}
	stableSortByDate(out)
	return out
}

// stableSortByDate is an insertion sort: event lists are small and same-date
// events must keep their input order.
func stableSortByDate(events []event.Event) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Date < events[j-1].Date; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}
