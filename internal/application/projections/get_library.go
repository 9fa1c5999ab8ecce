package projections

import (
	"context"

	"mindbridge/internal/adapters/storage/library"
	domain "mindbridge/internal/domain/library"
)

// LibraryBookStore defines the book store interface needed by the library
// projection.
type LibraryBookStore interface {
	List(ctx context.Context, filter library.ListFilter) ([]domain.Book, error)
}

// GetLibraryQuery carries input for the library projection.
type GetLibraryQuery struct {
	Category string // empty for all categories
	Search   string // free-text over title, author and description
}

// GetLibraryDeps holds dependencies for the library projection.
type GetLibraryDeps struct {
	BookStore LibraryBookStore
}

// QueryGetLibrary returns library books matching the category and search
// filters, sorted by title.
func QueryGetLibrary(ctx context.Context, query GetLibraryQuery, deps GetLibraryDeps) ([]domain.Book, error) {
	books, err := deps.BookStore.List(ctx, library.ListFilter{Category: query.Category})
	if err != nil {
		return nil, err
	}
	if query.Search == "" {
		return books, nil
	}

	var matched []domain.Book
	for _, b := range books {
		if b.MatchesQuery(query.Search) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}
