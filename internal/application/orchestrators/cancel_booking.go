package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mindbridge/internal/domain/booking"
)

// BookingStoreForCancel defines the store interface needed by CancelBooking.
type BookingStoreForCancel interface {
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	Save(ctx context.Context, b booking.Booking) error
}

// CancelBookingInput carries input for the orchestrator.
type CancelBookingInput struct {
	BookingID string
	StudentID string // requesting student; must own the booking
}

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	BookingStore BookingStoreForCancel
}

// ErrNotBookingOwner is returned when a student tries to cancel another
// student's booking.
var ErrNotBookingOwner = errors.New("booking belongs to another student")

// ExecuteCancelBooking lets a student withdraw their own booking.
// PRE: booking exists, is owned by StudentID, and is pending or approved
// POST: Booking status is cancelled
func ExecuteCancelBooking(ctx context.Context, input CancelBookingInput, deps CancelBookingDeps) error {
	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return err
	}
	if b.StudentID != input.StudentID {
		return ErrNotBookingOwner
	}
	if err := b.Cancel(); err != nil {
		return err
	}
	b.UpdatedAt = time.Now()
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return err
	}
	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", b.ID, "student_id", b.StudentID)
	return nil
}
