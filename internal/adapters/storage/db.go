package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		student_id TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS booking (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		session_type TEXT NOT NULL,
		reason TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		staff_notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		meet_link TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (student_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS event (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL DEFAULT '',
		end_time TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		organizer_id TEXT NOT NULL,
		max_participants INTEGER NOT NULL DEFAULT 50,
		image_url TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (organizer_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS event_registration (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		student_id TEXT NOT NULL,
		registered_at TEXT NOT NULL,
		attended INTEGER NOT NULL DEFAULT 0,
		UNIQUE (event_id, student_id),
		FOREIGN KEY (event_id) REFERENCES event(id),
		FOREIGN KEY (student_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS post (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		anonymous INTEGER NOT NULL DEFAULT 1,
		approved INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT,
		FOREIGN KEY (author_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS library_book (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'other',
		cover_image_url TEXT NOT NULL DEFAULT '',
		pdf_url TEXT NOT NULL DEFAULT '',
		external_link TEXT NOT NULL DEFAULT '',
		isbn TEXT NOT NULL DEFAULT '',
		published_year INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
