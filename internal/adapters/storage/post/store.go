package post

import (
	"context"

	domain "mindbridge/internal/domain/post"
)

// Store persists Post state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Save(ctx context.Context, value domain.Post) error
	Delete(ctx context.Context, id string) error
	ListApproved(ctx context.Context, category string) ([]domain.Post, error)
	ListPending(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	CountPending(ctx context.Context) (int, error)
}
