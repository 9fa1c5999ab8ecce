package event

import (
	"context"
	"database/sql"
	"fmt"

	"mindbridge/internal/adapters/storage"
	domain "mindbridge/internal/domain/event"
)

const eventColumns = "id, title, description, date, time, start_time, end_time, location, organizer_id, max_participants, image_url, active, created_at, updated_at"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new EventStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Event by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM event WHERE id = ?", id)

	entity, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Event{}, fmt.Errorf("event not found: %w", err)
	}
	return entity, err
}

// Save persists an Event to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title=excluded.title, description=excluded.description,
		   date=excluded.date, time=excluded.time,
		   start_time=excluded.start_time, end_time=excluded.end_time,
		   location=excluded.location, max_participants=excluded.max_participants,
		   image_url=excluded.image_url, active=excluded.active,
		   updated_at=excluded.updated_at`,
		entity.ID,
		entity.Title,
		entity.Description,
		entity.Date,
		entity.Time,
		entity.StartTime,
		entity.EndTime,
		entity.Location,
		entity.OrganizerID,
		entity.MaxParticipants,
		entity.ImageURL,
		boolToInt(entity.Active),
		storage.FormatTime(entity.CreatedAt),
		storage.FormatTime(entity.UpdatedAt),
	)
	return err
}

// DeleteWithRegistrations removes an event and its registrations atomically.
// PRE: id is non-empty
// POST: Event and all its registrations are removed, or neither is
func (s *SQLiteStore) DeleteWithRegistrations(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM event_registration WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns all events sorted by date ascending.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Event, error) {
	return s.list(ctx, "SELECT "+eventColumns+" FROM event ORDER BY date ASC, start_time ASC")
}

// ListByMonth returns events with dates in [from, to] inclusive.
// PRE: from and to are valid date strings (YYYY-MM-DD)
// POST: Returns events sorted by date ascending
func (s *SQLiteStore) ListByMonth(ctx context.Context, from, to string) ([]domain.Event, error) {
	return s.list(ctx,
		"SELECT "+eventColumns+" FROM event WHERE date >= ? AND date <= ? ORDER BY date ASC, start_time ASC",
		from, to)
}

// SaveRegistration persists a Registration.
// PRE: reg references an existing event and student
// POST: Registration is persisted; duplicate (event, student) pairs error
func (s *SQLiteStore) SaveRegistration(ctx context.Context, reg domain.Registration) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_registration (id, event_id, student_id, registered_at, attended)
		 VALUES (?, ?, ?, ?, ?)`,
		reg.ID,
		reg.EventID,
		reg.StudentID,
		storage.FormatTime(reg.RegisteredAt),
		boolToInt(reg.Attended),
	)
	return err
}

// DeleteRegistration removes a student's registration for an event.
func (s *SQLiteStore) DeleteRegistration(ctx context.Context, eventID, studentID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM event_registration WHERE event_id = ? AND student_id = ?",
		eventID, studentID)
	return err
}

// IsRegistered reports whether the student is registered for the event.
func (s *SQLiteStore) IsRegistered(ctx context.Context, eventID, studentID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_registration WHERE event_id = ? AND student_id = ?",
		eventID, studentID).Scan(&count)
	return count > 0, err
}

// CountRegistrations returns the registered count for one event.
func (s *SQLiteStore) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_registration WHERE event_id = ?", eventID).Scan(&count)
	return count, err
}

// RegistrationCounts returns registered counts keyed by event ID.
func (s *SQLiteStore) RegistrationCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT event_id, COUNT(*) FROM event_registration GROUP BY event_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}

// ListRegistrationsByStudent returns a student's registrations, newest first.
func (s *SQLiteStore) ListRegistrationsByStudent(ctx context.Context, studentID string) ([]domain.Registration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, event_id, student_id, registered_at, attended
		 FROM event_registration WHERE student_id = ? ORDER BY registered_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		var registeredAt string
		var attended int
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.StudentID, &registeredAt, &attended); err != nil {
			return nil, err
		}
		reg.RegisteredAt, _ = storage.ParseTime(registeredAt)
		reg.Attended = attended != 0
		results = append(results, reg)
	}
	return results, rows.Err()
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...interface{}) ([]domain.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		entity, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// scanEvent extracts an Event from a row scanner function.
func scanEvent(scan func(dest ...interface{}) error) (domain.Event, error) {
	var entity domain.Event
	var active int
	var createdAt string
	var updatedAt sql.NullString
	err := scan(
		&entity.ID,
		&entity.Title,
		&entity.Description,
		&entity.Date,
		&entity.Time,
		&entity.StartTime,
		&entity.EndTime,
		&entity.Location,
		&entity.OrganizerID,
		&entity.MaxParticipants,
		&entity.ImageURL,
		&active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.Event{}, err
	}
	entity.Active = active != 0
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
