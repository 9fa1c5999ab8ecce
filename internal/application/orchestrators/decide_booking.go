package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mindbridge/internal/adapters/email"
	"mindbridge/internal/domain/booking"
	"mindbridge/internal/domain/calendar"
)

// BookingStoreForDecide defines the store interface needed by DecideBooking.
type BookingStoreForDecide interface {
	GetByID(ctx context.Context, id string) (booking.Booking, error)
	Save(ctx context.Context, b booking.Booking) error
}

// Decision constants for booking review.
const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// DecideBookingInput carries input for the orchestrator.
type DecideBookingInput struct {
	BookingID  string
	Decision   string // approve or reject
	MeetLink   string // optional, approve only
	StaffNotes string
}

// DecideBookingDeps holds dependencies for DecideBooking.
type DecideBookingDeps struct {
	BookingStore BookingStoreForDecide
	EmailSender  email.Sender
}

// ErrInvalidDecision is returned for decisions other than approve/reject.
var ErrInvalidDecision = errors.New("decision must be approve or reject")

// ExecuteDecideBooking applies a staff decision to a pending booking and
// notifies the student by email. The email is best-effort: a send failure
// does not roll back the decision.
// PRE: booking exists and is pending
// POST: Booking status updated; notification attempted if the student left
// an email address
func ExecuteDecideBooking(ctx context.Context, input DecideBookingInput, deps DecideBookingDeps) error {
	b, err := deps.BookingStore.GetByID(ctx, input.BookingID)
	if err != nil {
		return err
	}

	switch input.Decision {
	case DecisionApprove:
		if err := b.Approve(input.MeetLink, input.StaffNotes); err != nil {
			return err
		}
	case DecisionReject:
		if err := b.Reject(input.StaffNotes); err != nil {
			return err
		}
	default:
		return ErrInvalidDecision
	}

	b.UpdatedAt = time.Now()
	if err := deps.BookingStore.Save(ctx, b); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "booking_decided", "booking_id", b.ID, "decision", input.Decision)

	if deps.EmailSender != nil && b.Email != "" {
		displayTime := calendar.FormatClock(b.Time)
		var subject, body string
		if b.Status == booking.StatusApproved {
			subject, body = email.BookingApproved(b.FullName, b.Date, displayTime, b.MeetLink, b.StaffNotes)
		} else {
			subject, body = email.BookingRejected(b.FullName, b.Date, displayTime, b.StaffNotes)
		}
		if _, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{b.Email},
			Subject: subject,
			HTML:    body,
		}); err != nil {
			slog.Error("booking_event", "event", "decision_email_failed", "booking_id", b.ID, "error", err)
		}
	}

	return nil
}
