package library

import (
	"context"

	domain "mindbridge/internal/domain/library"
)

// Store persists library Book state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Book, error)
	Save(ctx context.Context, value domain.Book) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Book, error)
	Count(ctx context.Context) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Category string
}
