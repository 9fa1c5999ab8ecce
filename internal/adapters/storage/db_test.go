package storage

import (
	"database/sql"
	"sort"
	"testing"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables InitDB creates.
var expectedTables = []string{
	"account",
	"booking",
	"event",
	"event_registration",
	"library_book",
	"post",
}

func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables, want %d\ngot:  %v\nwant: %v", len(tables), len(expectedTables), tables, expectedTables)
	}
	for i, want := range expectedTables {
		if i >= len(tables) {
			t.Errorf("missing table: %s", want)
			continue
		}
		if tables[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, tables[i], want)
		}
	}
}

func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB failed: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	tables := getTableNames(t, db)
	if len(tables) != len(expectedTables) {
		t.Errorf("got %d tables after second run, want %d", len(tables), len(expectedTables))
	}
}

// TestInitDB_DataSurvival verifies that existing rows survive a re-run,
// since InitDB uses IF NOT EXISTS throughout.
func TestInitDB_DataSurvival(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	_, err := db.Exec(`INSERT INTO account (id, username, email, role, created_at) VALUES ('a1', 'casey', 'casey@campus.edu', 'student', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test account: %v", err)
	}
	_, err = db.Exec(`INSERT INTO booking (id, student_id, date, time, session_type, reason, created_at) VALUES ('b1', 'a1', '2026-02-01', '10:00', 'individual', 'stress', '2026-01-01T00:00:00Z')`)
	if err != nil {
		t.Fatalf("failed to insert test booking: %v", err)
	}

	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB failed: %v", err)
	}

	var username string
	if err := db.QueryRow("SELECT username FROM account WHERE id = 'a1'").Scan(&username); err != nil {
		t.Fatalf("account data lost: %v", err)
	}
	if username != "casey" {
		t.Errorf("username = %q, want %q", username, "casey")
	}

	var status string
	if err := db.QueryRow("SELECT status FROM booking WHERE id = 'b1'").Scan(&status); err != nil {
		t.Fatalf("booking data lost: %v", err)
	}
	if status != "pending" {
		t.Errorf("booking status = %q, want %q", status, "pending")
	}
}

// TestInitDB_RegistrationUnique verifies the (event, student) uniqueness
// constraint on event_registration.
func TestInitDB_RegistrationUnique(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}

	seed := []string{
		`INSERT INTO account (id, username, email, role, created_at) VALUES ('a1', 'casey', 'casey@campus.edu', 'student', '2026-01-01T00:00:00Z')`,
		`INSERT INTO account (id, username, email, role, created_at) VALUES ('s1', 'wellness_team', 'team@campus.edu', 'staff', '2026-01-01T00:00:00Z')`,
		`INSERT INTO event (id, title, date, location, organizer_id, created_at) VALUES ('e1', 'Yoga', '2026-02-01', 'Hub', 's1', '2026-01-01T00:00:00Z')`,
		`INSERT INTO event_registration (id, event_id, student_id, registered_at) VALUES ('r1', 'e1', 'a1', '2026-01-02T00:00:00Z')`,
	}
	for _, stmt := range seed {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	_, err := db.Exec(`INSERT INTO event_registration (id, event_id, student_id, registered_at) VALUES ('r2', 'e1', 'a1', '2026-01-03T00:00:00Z')`)
	if err == nil {
		t.Fatal("expected duplicate registration to violate UNIQUE constraint")
	}
}
