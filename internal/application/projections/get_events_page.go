package projections

import (
	"context"
	"time"

	"mindbridge/internal/domain/calendar"
	"mindbridge/internal/domain/event"
)

// EventsPageEventStore defines the event store interface needed by the
// events page projection.
type EventsPageEventStore interface {
	List(ctx context.Context) ([]event.Event, error)
	ListByMonth(ctx context.Context, from, to string) ([]event.Event, error)
	RegistrationCounts(ctx context.Context) (map[string]int, error)
	ListRegistrationsByStudent(ctx context.Context, studentID string) ([]event.Registration, error)
}

// GetEventsPageQuery carries input for the events page projection.
type GetEventsPageQuery struct {
	Month        int    // 0-11; defaults to the current month when out of range
	Year         int
	SelectedDate string // YYYY-MM-DD, empty for no selection
	StudentID    string // empty for guests and staff browsing
}

// GetEventsPageDeps holds dependencies for the events page projection.
type GetEventsPageDeps struct {
	EventStore EventsPageEventStore
}

// EventItem is one event annotated for display.
type EventItem struct {
	event.Event
	DisplayTime    string
	SpotsRemaining int
	IsFull         bool
	Registered     bool
}

// EventsPageResult carries the output of the events page projection.
type EventsPageResult struct {
	View   calendar.ViewState
	Title  string
	Cells  []calendar.Cell
	Events []EventItem
}

// QueryGetEventsPage assembles everything the events page needs: the month
// grid with event markers and the filtered, annotated event list.
// POST: Events holds upcoming active events in ascending date order, or
// every event on the selected date when one is chosen
func QueryGetEventsPage(ctx context.Context, query GetEventsPageQuery, deps GetEventsPageDeps, now time.Time) (EventsPageResult, error) {
	view := calendar.New(now)
	if query.Year > 0 && query.Month >= calendar.MinMonth && query.Month <= calendar.MaxMonth {
		view.Month = query.Month
		view.Year = query.Year
	}
	view.SelectDate(query.SelectedDate)

	all, err := deps.EventStore.List(ctx)
	if err != nil {
		return EventsPageResult{}, err
	}
	counts, err := deps.EventStore.RegistrationCounts(ctx)
	if err != nil {
		return EventsPageResult{}, err
	}

	mine := make(map[string]bool)
	if query.StudentID != "" {
		regs, err := deps.EventStore.ListRegistrationsByStudent(ctx, query.StudentID)
		if err != nil {
			return EventsPageResult{}, err
		}
		for _, r := range regs {
			mine[r.EventID] = true
		}
	}

	today := now.Format(event.DateLayout)

	// Dots count every event on a date, past or inactive included. The
	// list applies its own filter; the grid does not.
	first := time.Date(view.Year, time.Month(view.Month+1), 1, 0, 0, 0, 0, time.UTC)
	monthEvents, err := deps.EventStore.ListByMonth(ctx,
		first.Format(event.DateLayout), first.AddDate(0, 1, -1).Format(event.DateLayout))
	if err != nil {
		return EventsPageResult{}, err
	}
	dotDates := make([]string, 0, len(monthEvents))
	for _, e := range monthEvents {
		dotDates = append(dotDates, e.Date)
	}

	visible := view.VisibleEvents(all, today)
	items := make([]EventItem, 0, len(visible))
	for _, e := range visible {
		n := counts[e.ID]
		items = append(items, EventItem{
			Event:          e,
			DisplayTime:    calendar.FormatTimeRange(e.StartClock(), e.EndTime),
			SpotsRemaining: e.SpotsRemaining(n),
			IsFull:         e.IsFull(n),
			Registered:     mine[e.ID],
		})
	}

	return EventsPageResult{
		View:   view,
		Title:  view.Title(),
		Cells:  calendar.Cells(view.Month, view.Year, view.SelectedDate, now, dotDates),
		Events: items,
	}, nil
}
