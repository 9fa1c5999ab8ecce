package projections

import (
	"context"
	"time"

	"mindbridge/internal/domain/booking"
	"mindbridge/internal/domain/calendar"
)

// BookingsStore defines the booking store interface needed by the bookings
// projection.
type BookingsStore interface {
	ListByStudent(ctx context.Context, studentID string) ([]booking.Booking, error)
	ListByStatus(ctx context.Context, status string) ([]booking.Booking, error)
	List(ctx context.Context) ([]booking.Booking, error)
}

// GetBookingsQuery carries input for the bookings projection.
type GetBookingsQuery struct {
	StudentID string // set for a student's own list
	Staff     bool   // staff see every booking, optionally by status
	Status    string // staff filter, empty for all
}

// GetBookingsDeps holds dependencies for the bookings projection.
type GetBookingsDeps struct {
	BookingStore BookingsStore
}

// BookingItem is one booking annotated for display.
type BookingItem struct {
	booking.Booking
	DisplayTime  string
	CanCancel    bool
	MeetingState booking.MeetingState // set for approved bookings only
}

// QueryGetBookings returns bookings for the student's own view or the
// staff review queue.
// POST: students only ever see their own bookings
func QueryGetBookings(ctx context.Context, query GetBookingsQuery, deps GetBookingsDeps, now time.Time) ([]BookingItem, error) {
	var (
		bookings []booking.Booking
		err      error
	)
	switch {
	case query.Staff && query.Status != "":
		bookings, err = deps.BookingStore.ListByStatus(ctx, query.Status)
	case query.Staff:
		bookings, err = deps.BookingStore.List(ctx)
	default:
		bookings, err = deps.BookingStore.ListByStudent(ctx, query.StudentID)
	}
	if err != nil {
		return nil, err
	}

	items := make([]BookingItem, 0, len(bookings))
	for _, b := range bookings {
		item := BookingItem{
			Booking:     b,
			DisplayTime: calendar.FormatClock(b.Time),
			CanCancel:   b.CanCancel(),
		}
		if b.Status == booking.StatusApproved {
			if state, err := b.MeetingStateAt(now); err == nil {
				item.MeetingState = state
			}
		}
		items = append(items, item)
	}
	return items, nil
}
