package booking

import (
	"context"

	domain "mindbridge/internal/domain/booking"
)

// Store persists Booking state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Booking, error)
	Save(ctx context.Context, value domain.Booking) error
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
