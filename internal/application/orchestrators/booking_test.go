package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindbridge/internal/adapters/email"
	"mindbridge/internal/domain/booking"
)

// mockBookingStore implements the booking store interfaces for testing.
type mockBookingStore struct {
	bookings map[string]booking.Booking
}

func newMockBookingStore() *mockBookingStore {
	return &mockBookingStore{bookings: make(map[string]booking.Booking)}
}

func (m *mockBookingStore) GetByID(_ context.Context, id string) (booking.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return booking.Booking{}, errors.New("not found")
	}
	return b, nil
}

func (m *mockBookingStore) Save(_ context.Context, b booking.Booking) error {
	m.bookings[b.ID] = b
	return nil
}

func (m *mockBookingStore) ListByStatus(_ context.Context, status string) ([]booking.Booking, error) {
	var out []booking.Booking
	for _, b := range m.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

// mockEmailSender records sends and optionally fails.
type mockEmailSender struct {
	sent []email.SendRequest
	fail bool
}

func (m *mockEmailSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	if m.fail {
		return email.SendResult{}, errors.New("provider down")
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}

var bookingNow = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

func bookingClock() time.Time { return bookingNow }

// TestExecuteCreateBooking_Valid tests a booking starts pending.
func TestExecuteCreateBooking_Valid(t *testing.T) {
	store := newMockBookingStore()
	id, err := ExecuteCreateBooking(context.Background(), CreateBookingInput{
		StudentID: "acc-1",
		FullName:  "Jorja Whitford",
		Email:     "jorja@campus.edu",
		Date:      "2026-09-14",
		Time:      "10:30",
		Reason:    "exam stress",
	}, CreateBookingDeps{BookingStore: store, Now: bookingClock})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := store.bookings[id]
	if b.Status != booking.StatusPending {
		t.Errorf("expected status=pending, got %s", b.Status)
	}
	if b.SessionType != booking.TypeIndividual {
		t.Errorf("expected default session type, got %s", b.SessionType)
	}
}

// TestExecuteCreateBooking_PastDate tests past dates are refused.
func TestExecuteCreateBooking_PastDate(t *testing.T) {
	store := newMockBookingStore()
	_, err := ExecuteCreateBooking(context.Background(), CreateBookingInput{
		StudentID: "acc-1",
		Date:      "2026-08-31",
		Time:      "10:30",
		Reason:    "exam stress",
	}, CreateBookingDeps{BookingStore: store, Now: bookingClock})
	if !errors.Is(err, booking.ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
}

func pendingBooking(store *mockBookingStore) booking.Booking {
	b := booking.Booking{
		ID:          "bk-1",
		StudentID:   "acc-1",
		FullName:    "Jorja Whitford",
		Email:       "jorja@campus.edu",
		Date:        "2026-09-14",
		Time:        "10:30",
		SessionType: booking.TypeIndividual,
		Reason:      "exam stress",
		Status:      booking.StatusPending,
		CreatedAt:   bookingNow,
	}
	store.bookings[b.ID] = b
	return b
}

// TestExecuteDecideBooking_Approve tests approval stores the link and
// notifies the student.
func TestExecuteDecideBooking_Approve(t *testing.T) {
	store := newMockBookingStore()
	pendingBooking(store)
	sender := &mockEmailSender{}

	err := ExecuteDecideBooking(context.Background(), DecideBookingInput{
		BookingID:  "bk-1",
		Decision:   DecisionApprove,
		MeetLink:   "https://meet.example/abc",
		StaffNotes: "see you then",
	}, DecideBookingDeps{BookingStore: store, EmailSender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := store.bookings["bk-1"]
	if b.Status != booking.StatusApproved || b.MeetLink != "https://meet.example/abc" {
		t.Errorf("approval not recorded: %+v", b)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}
	if sender.sent[0].To[0] != "jorja@campus.edu" {
		t.Errorf("email to %v", sender.sent[0].To)
	}
}

// TestExecuteDecideBooking_Reject tests rejection keeps the staff notes.
func TestExecuteDecideBooking_Reject(t *testing.T) {
	store := newMockBookingStore()
	pendingBooking(store)
	sender := &mockEmailSender{}

	err := ExecuteDecideBooking(context.Background(), DecideBookingInput{
		BookingID:  "bk-1",
		Decision:   DecisionReject,
		StaffNotes: "no availability that week",
	}, DecideBookingDeps{BookingStore: store, EmailSender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := store.bookings["bk-1"]
	if b.Status != booking.StatusRejected || b.StaffNotes != "no availability that week" {
		t.Errorf("rejection not recorded: %+v", b)
	}
	if len(sender.sent) != 1 {
		t.Errorf("expected one email, got %d", len(sender.sent))
	}
}

// TestExecuteDecideBooking_EmailFailureKeepsDecision tests that a failed
// send does not roll back the status change.
func TestExecuteDecideBooking_EmailFailureKeepsDecision(t *testing.T) {
	store := newMockBookingStore()
	pendingBooking(store)
	sender := &mockEmailSender{fail: true}

	err := ExecuteDecideBooking(context.Background(), DecideBookingInput{
		BookingID: "bk-1",
		Decision:  DecisionApprove,
	}, DecideBookingDeps{BookingStore: store, EmailSender: sender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.bookings["bk-1"].Status != booking.StatusApproved {
		t.Error("decision must survive a failed notification")
	}
}

// TestExecuteDecideBooking_InvalidDecision tests unknown decisions error.
func TestExecuteDecideBooking_InvalidDecision(t *testing.T) {
	store := newMockBookingStore()
	pendingBooking(store)

	err := ExecuteDecideBooking(context.Background(), DecideBookingInput{
		BookingID: "bk-1",
		Decision:  "defer",
	}, DecideBookingDeps{BookingStore: store})
	if !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

// TestExecuteCancelBooking_Ownership tests only the owner can cancel.
func TestExecuteCancelBooking_Ownership(t *testing.T) {
	store := newMockBookingStore()
	pendingBooking(store)

	err := ExecuteCancelBooking(context.Background(), CancelBookingInput{
		BookingID: "bk-1",
		StudentID: "acc-2",
	}, CancelBookingDeps{BookingStore: store})
	if !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}

	err = ExecuteCancelBooking(context.Background(), CancelBookingInput{
		BookingID: "bk-1",
		StudentID: "acc-1",
	}, CancelBookingDeps{BookingStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.bookings["bk-1"].Status != booking.StatusCancelled {
		t.Error("expected cancelled status")
	}
}

// TestExecuteCompleteElapsedBookings tests the periodic sweep.
func TestExecuteCompleteElapsedBookings(t *testing.T) {
	store := newMockBookingStore()

	past := pendingBooking(store)
	past.ID = "bk-past"
	past.Status = booking.StatusApproved
	past.Date = "2026-08-30"
	store.bookings[past.ID] = past

	future := pendingBooking(store)
	future.ID = "bk-future"
	future.Status = booking.StatusApproved
	future.Date = "2026-09-20"
	store.bookings[future.ID] = future

	n, err := ExecuteCompleteElapsedBookings(context.Background(), CompleteElapsedBookingsDeps{
		BookingStore: store,
		Now:          bookingClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 completion, got %d", n)
	}
	if store.bookings["bk-past"].Status != booking.StatusCompleted {
		t.Error("elapsed booking not completed")
	}
	if store.bookings["bk-future"].Status != booking.StatusApproved {
		t.Error("future booking must stay approved")
	}
}
