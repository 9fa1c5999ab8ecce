package library

import (
	"context"
	"database/sql"
	"fmt"

	"mindbridge/internal/adapters/storage"
	domain "mindbridge/internal/domain/library"
)

const bookColumns = "id, title, author, description, category, cover_image_url, pdf_url, external_link, isbn, published_year, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new library BookStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Book by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookColumns+" FROM library_book WHERE id = ?", id)

	entity, err := scanBook(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Book{}, fmt.Errorf("book not found: %w", err)
	}
	return entity, err
}

// Save persists a Book to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Book) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO library_book (`+bookColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, author=excluded.author,
		   description=excluded.description, category=excluded.category,
		   cover_image_url=excluded.cover_image_url, pdf_url=excluded.pdf_url,
		   external_link=excluded.external_link, isbn=excluded.isbn,
		   published_year=excluded.published_year, updated_at=excluded.updated_at`,
		entity.ID,
		entity.Title,
		entity.Author,
		entity.Description,
		entity.Category,
		entity.CoverImageURL,
		entity.PDFURL,
		entity.ExternalLink,
		entity.ISBN,
		entity.PublishedYear,
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	return err
}

// Delete removes a Book from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM library_book WHERE id = ?", id)
	return err
}

// List retrieves Books based on the filter, sorted by title.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Book, error) {
	query := "SELECT " + bookColumns + " FROM library_book"
	var args []interface{}
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY title ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Book
	for rows.Next() {
		entity, err := scanBook(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// Count returns the total number of books.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM library_book").Scan(&count)
	return count, err
}

// scanBook extracts a Book from a row scanner function.
func scanBook(scan func(dest ...interface{}) error) (domain.Book, error) {
	var entity domain.Book
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Author,
		&entity.Description,
		&entity.Category,
		&entity.CoverImageURL,
		&entity.PDFURL,
		&entity.ExternalLink,
		&entity.ISBN,
		&entity.PublishedYear,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Book{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if updatedAt.Valid && updatedAt.String != "" {
		entity.UpdatedAt, _ = storage.ParseTime(updatedAt.String)
	}
	return entity, nil
}
