package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingStoreForCreate defines the store interface needed by CreateBooking.
type BookingStoreForCreate interface {
	Save(ctx context.Context, b booking.Booking) error
}

// CreateBookingInput carries input for the orchestrator.
type CreateBookingInput struct {
	StudentID   string
	FullName    string
	Email       string
	Phone       string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	SessionType string
	Reason      string
	Notes       string
}

// CreateBookingDeps holds dependencies for CreateBooking.
type CreateBookingDeps struct {
	BookingStore BookingStoreForCreate
	Now          func() time.Time
}

// ExecuteCreateBooking coordinates creating a counselling booking request.
// PRE: StudentID belongs to the logged-in student; date and time are set
// POST: Booking created with Status=pending
// INVARIANT: Booking date is today or later
func ExecuteCreateBooking(ctx context.Context, input CreateBookingInput, deps CreateBookingDeps) (string, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}

	b := booking.Booking{
		ID:          uuid.New().String(),
		StudentID:   input.StudentID,
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		Date:        input.Date,
		Time:        input.Time,
		SessionType: input.SessionType,
		Reason:      input.Reason,
		Notes:       input.Notes,
		Status:      booking.StatusPending,
		CreatedAt:   now(),
	}
	if b.SessionType == "" {
		b.SessionType = booking.TypeIndividual
	}

	if err := b.Validate(); err != nil {
		return "", err
	}
	if b.Date < now().Format("2006-01-02") {
		return "", booking.ErrPastDate
	}

	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return "", err
	}

	slog.Info("booking_event", "event", "booking_created", "booking_id", b.ID, "student_id", b.StudentID, "date", b.Date)
	return b.ID, nil
}
