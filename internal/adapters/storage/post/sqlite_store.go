package post

import (
	"context"
	"database/sql"
	"fmt"

	"mindbridge/internal/adapters/storage"
	domain "mindbridge/internal/domain/post"
)

const postColumns = "id, author_id, author, title, content, category, anonymous, approved, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new PostStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Post by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+postColumns+" FROM post WHERE id = ?", id)

	entity, err := scanPost(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Post{}, fmt.Errorf("post not found: %w", err)
	}
	return entity, err
}

// Save persists a Post to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Post) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO post (`+postColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, content=excluded.content, category=excluded.category,
		   anonymous=excluded.anonymous, approved=excluded.approved,
		   updated_at=excluded.updated_at`,
		entity.ID,
		entity.AuthorID,
		entity.Author,
		entity.Title,
		entity.Content,
		entity.Category,
		boolToInt(entity.Anonymous),
		boolToInt(entity.Approved),
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	return err
}

// Delete removes a Post from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM post WHERE id = ?", id)
	return err
}

// ListApproved returns approved posts, newest first, optionally filtered
// by category.
func (s *SQLiteStore) ListApproved(ctx context.Context, category string) ([]domain.Post, error) {
	if category != "" {
		return s.list(ctx,
			"SELECT "+postColumns+" FROM post WHERE approved = 1 AND category = ? ORDER BY created_at DESC",
			category)
	}
	return s.list(ctx,
		"SELECT "+postColumns+" FROM post WHERE approved = 1 ORDER BY created_at DESC")
}

// ListPending returns unapproved posts awaiting moderation, oldest first.
func (s *SQLiteStore) ListPending(ctx context.Context) ([]domain.Post, error) {
	return s.list(ctx,
		"SELECT "+postColumns+" FROM post WHERE approved = 0 ORDER BY created_at ASC")
}

// ListByAuthor returns an author's posts, approved or not, newest first.
func (s *SQLiteStore) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	return s.list(ctx,
		"SELECT "+postColumns+" FROM post WHERE author_id = ? ORDER BY created_at DESC",
		authorID)
}

// CountPending returns the number of posts awaiting moderation.
func (s *SQLiteStore) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM post WHERE approved = 0").Scan(&count)
	return count, err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...interface{}) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Post
	for rows.Next() {
		entity, err := scanPost(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanPost extracts a Post from a row scanner function.
func scanPost(scan func(dest ...interface{}) error) (domain.Post, error) {
	var entity domain.Post
	var anonymous, approved int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.AuthorID,
		&entity.Author,
		&entity.Title,
		&entity.Content,
		&entity.Category,
		&anonymous,
		&approved,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Post{}, err
	}
	entity.Anonymous = anonymous != 0
	entity.Approved = approved != 0
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if updatedAt.Valid && updatedAt.String != "" {
		entity.UpdatedAt, _ = storage.ParseTime(updatedAt.String)
	}
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
