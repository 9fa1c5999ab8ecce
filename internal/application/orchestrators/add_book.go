package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/library"

	"github.com/google/uuid"
)

// BookStoreForAdd defines the store interface needed by AddBook.
type BookStoreForAdd interface {
	Save(ctx context.Context, b library.Book) error
}

// AddBookInput carries input for the orchestrator.
type AddBookInput struct {
	Title         string
	Author        string
	Description   string
	Category      string
	CoverImageURL string
	PDFURL        string
	ExternalLink  string
	ISBN          string
	PublishedYear int
}

// AddBookDeps holds dependencies for AddBook.
type AddBookDeps struct {
	BookStore BookStoreForAdd
}

// ExecuteAddBook adds a resource to the wellness library.
// PRE: caller is staff
// POST: Book created and immediately visible to all users
func ExecuteAddBook(ctx context.Context, input AddBookInput, deps AddBookDeps) (string, error) {
	b := library.Book{
		ID:            uuid.New().String(),
		Title:         input.Title,
		Author:        input.Author,
		Description:   input.Description,
		Category:      input.Category,
		CoverImageURL: input.CoverImageURL,
		PDFURL:        input.PDFURL,
		ExternalLink:  input.ExternalLink,
		ISBN:          input.ISBN,
		PublishedYear: input.PublishedYear,
		CreatedAt:     time.Now(),
	}
	if b.Category == "" {
		b.Category = library.CategoryOther
	}

	if err := b.Validate(); err != nil {
		return "", err
	}
	if err := deps.BookStore.Save(ctx, b); err != nil {
		return "", err
	}

	slog.Info("library_event", "event", "book_added", "book_id", b.ID, "title", b.Title)
	return b.ID, nil
}
