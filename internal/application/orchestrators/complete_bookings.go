package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/booking"
)

// BookingStoreForSweep defines the store interface needed by CompleteElapsedBookings.
type BookingStoreForSweep interface {
	ListByStatus(ctx context.Context, status string) ([]booking.Booking, error)
	Save(ctx context.Context, b booking.Booking) error
}

// CompleteElapsedBookingsDeps holds dependencies for the sweep.
type CompleteElapsedBookingsDeps struct {
	BookingStore BookingStoreForSweep
	Now          func() time.Time
}

// ExecuteCompleteElapsedBookings marks approved bookings whose session
// window has ended as completed. Runs periodically from the scheduler.
// POST: Every approved booking past its meeting window is completed;
// returns how many were updated
func ExecuteCompleteElapsedBookings(ctx context.Context, deps CompleteElapsedBookingsDeps) (int, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	approved, err := deps.BookingStore.ListByStatus(ctx, booking.StatusApproved)
	if err != nil {
		return 0, err
	}

	completed := 0
	for _, b := range approved {
		state, err := b.MeetingStateAt(now())
		if err != nil {
			slog.Warn("booking_event", "event", "sweep_skip", "booking_id", b.ID, "error", err)
			continue
		}
		if state != booking.MeetingEnded {
			continue
		}
		b.Status = booking.StatusCompleted
		b.UpdatedAt = now()
		if err := deps.BookingStore.Save(ctx, b); err != nil {
			return completed, err
		}
		completed++
	}

	if completed > 0 {
		slog.Info("booking_event", "event", "sweep_completed", "count", completed)
	}
	return completed, nil
}
