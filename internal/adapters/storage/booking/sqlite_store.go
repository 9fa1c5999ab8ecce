package booking

import (
	"context"
	"database/sql"
	"fmt"

	"mindbridge/internal/adapters/storage"
	domain "mindbridge/internal/domain/booking"
)

const bookingColumns = "id, student_id, full_name, email, phone, date, time, session_type, reason, notes, staff_notes, status, meet_link, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new BookingStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Booking by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Booking, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM booking WHERE id = ?", id)

	entity, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Booking{}, fmt.Errorf("booking not found: %w", err)
	}
	return entity, err
}

// Save persists a Booking to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Booking) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO booking (`+bookingColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   full_name=excluded.full_name, email=excluded.email, phone=excluded.phone,
		   date=excluded.date, time=excluded.time, session_type=excluded.session_type,
		   reason=excluded.reason, notes=excluded.notes, staff_notes=excluded.staff_notes,
		   status=excluded.status, meet_link=excluded.meet_link, updated_at=excluded.updated_at`,
		entity.ID,
		entity.StudentID,
		entity.FullName,
		entity.Email,
		entity.Phone,
		entity.Date,
		entity.Time,
		entity.SessionType,
		entity.Reason,
		entity.Notes,
		entity.StaffNotes,
		entity.Status,
		entity.MeetLink,
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	return err
}

// Delete removes a Booking from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM booking WHERE id = ?", id)
	return err
}

// ListByStudent returns a student's bookings, newest first.
// PRE: studentID is non-empty
// POST: Returns matching entities sorted by created_at descending
func (s *SQLiteStore) ListByStudent(ctx context.Context, studentID string) ([]domain.Booking, error) {
	return s.list(ctx,
		"SELECT "+bookingColumns+" FROM booking WHERE student_id = ? ORDER BY created_at DESC",
		studentID)
}

// ListByStatus returns all bookings in the given status.
// PRE: status is a valid status value
// POST: Returns matching entities sorted by date ascending
func (s *SQLiteStore) ListByStatus(ctx context.Context, status string) ([]domain.Booking, error) {
	return s.list(ctx,
		"SELECT "+bookingColumns+" FROM booking WHERE status = ? ORDER BY date ASC, time ASC",
		status)
}

// List returns all bookings, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx,
		"SELECT "+bookingColumns+" FROM booking ORDER BY created_at DESC")
}

// CountByStatus returns the number of bookings in the given status.
func (s *SQLiteStore) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM booking WHERE status = ?", status).Scan(&count)
	return count, err
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Booking
	for rows.Next() {
		entity, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanBooking extracts a Booking from a row scanner function.
func scanBooking(scan func(dest ...interface{}) error) (domain.Booking, error) {
	var entity domain.Booking
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.StudentID,
		&entity.FullName,
		&entity.Email,
		&entity.Phone,
		&entity.Date,
		&entity.Time,
		&entity.SessionType,
		&entity.Reason,
		&entity.Notes,
		&entity.StaffNotes,
		&entity.Status,
		&entity.MeetLink,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}
	entity.CreatedAt, _ = storage.ParseTime(createdAt)
	if updatedAt.Valid && updatedAt.String != "" {
		entity.UpdatedAt, _ = storage.ParseTime(updatedAt.String)
	}
	return entity, nil
}
