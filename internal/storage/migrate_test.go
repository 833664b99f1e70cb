package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateUpDownUp(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applied, err := MigrateUp(db)
	if err != nil {
		t.Fatalf("first migrate up: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied migration, got %d", applied)
	}
	for _, table := range []string{"tasks", "subtasks", "goals", "reflections"} {
		if !tableExists(t, db, table) {
			t.Fatalf("expected table %s after migrate up", table)
		}
	}

	if _, err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if tableExists(t, db, "tasks") {
		t.Fatal("expected tasks table dropped after migrate down")
	}

	// Migrations are idempotent; a second pass must not fail.
	if _, err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up: %v", err)
	}
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var found string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return true
}
