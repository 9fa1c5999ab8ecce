package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mindbridge/internal/domain/event"

	"github.com/google/uuid"
)

// EventStoreForRegistration defines the store interface needed by the
// registration orchestrators.
type EventStoreForRegistration interface {
	GetByID(ctx context.Context, id string) (event.Event, error)
	IsRegistered(ctx context.Context, eventID, studentID string) (bool, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	SaveRegistration(ctx context.Context, reg event.Registration) error
	DeleteRegistration(ctx context.Context, eventID, studentID string) error
}

// RegisterForEventInput carries input for the orchestrator.
type RegisterForEventInput struct {
	EventID   string
	StudentID string
}

// RegistrationDeps holds dependencies for the registration orchestrators.
type RegistrationDeps struct {
	EventStore EventStoreForRegistration
}

var (
	ErrEventFull         = errors.New("event is full")
	ErrEventInactive     = errors.New("event is not open for registration")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrNotRegistered     = errors.New("not registered for this event")
)

// ExecuteRegisterForEvent registers a student for an event.
// PRE: event exists and is active
// POST: Registration created unless the event is full or the student is
// already registered
// INVARIANT: registered count never exceeds MaxParticipants
func ExecuteRegisterForEvent(ctx context.Context, input RegisterForEventInput, deps RegistrationDeps) error {
	e, err := deps.EventStore.GetByID(ctx, input.EventID)
	if err != nil {
		return err
	}
	if !e.Active {
		return ErrEventInactive
	}

	registered, err := deps.EventStore.IsRegistered(ctx, e.ID, input.StudentID)
	if err != nil {
		return err
	}
	if registered {
		return ErrAlreadyRegistered
	}

	count, err := deps.EventStore.CountRegistrations(ctx, e.ID)
	if err != nil {
		return err
	}
	if e.IsFull(count) {
		return ErrEventFull
	}

	reg := event.Registration{
		ID:           uuid.New().String(),
		EventID:      e.ID,
		StudentID:    input.StudentID,
		RegisteredAt: time.Now(),
	}
	if err := deps.EventStore.SaveRegistration(ctx, reg); err != nil {
		return err
	}

	slog.Info("event_event", "event", "registration_created", "event_id", e.ID, "student_id", input.StudentID)
	return nil
}

// ExecuteUnregisterFromEvent removes a student's registration.
// PRE: the student is registered for the event
// POST: Registration removed, freeing one spot
func ExecuteUnregisterFromEvent(ctx context.Context, input RegisterForEventInput, deps RegistrationDeps) error {
	registered, err := deps.EventStore.IsRegistered(ctx, input.EventID, input.StudentID)
	if err != nil {
		return err
	}
	if !registered {
		return ErrNotRegistered
	}
	if err := deps.EventStore.DeleteRegistration(ctx, input.EventID, input.StudentID); err != nil {
		return err
	}
	slog.Info("event_event", "event", "registration_removed", "event_id", input.EventID, "student_id", input.StudentID)
	return nil
}
