package event

import (
	"context"

	domain "mindbridge/internal/domain/event"
)

// Store persists Event and Registration state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Event, error)
	Save(ctx context.Context, value domain.Event) error
	// DeleteWithRegistrations removes an event and every registration for
	// it in a single transaction.
	DeleteWithRegistrations(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Event, error)
	ListByMonth(ctx context.Context, from, to string) ([]domain.Event, error)

	SaveRegistration(ctx context.Context, reg domain.Registration) error
	DeleteRegistration(ctx context.Context, eventID, studentID string) error
	IsRegistered(ctx context.Context, eventID, studentID string) (bool, error)
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	// RegistrationCounts returns registered counts keyed by event ID.
	RegistrationCounts(ctx context.Context) (map[string]int, error)
	ListRegistrationsByStudent(ctx context.Context, studentID string) ([]domain.Registration, error)
}
