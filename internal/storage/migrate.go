package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUp applies the schema for tasks, subtasks, goals and reflections
// and returns how many migration files ran.
func MigrateUp(db *sql.DB) (int, error) {
	return applyMigrations(db, ".up.sql")
}

// MigrateDown drops the planner schema in reverse file order.
func MigrateDown(db *sql.DB) (int, error) {
	return applyMigrations(db, ".down.sql")
}

// Each file runs inside its own transaction so a failed statement leaves
// earlier migrations applied and the failing file fully rolled back.
func applyMigrations(db *sql.DB, suffix string) (int, error) {
	entries, err := fs.Glob(migrationFiles, "migrations/*"+suffix)
	if err != nil {
		return 0, fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(entries)
	if suffix == ".down.sql" {
		sort.Sort(sort.Reverse(sort.StringSlice(entries)))
	}
	applied := 0
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, readErr)
		}
		tx, txErr := db.Begin()
		if txErr != nil {
			return applied, fmt.Errorf("begin migration %s: %w", name, txErr)
		}
		if _, execErr := tx.Exec(string(sqlBytes)); execErr != nil {
			tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", name, execErr)
		}
		if commitErr := tx.Commit(); commitErr != nil {
			return applied, fmt.Errorf("commit migration %s: %w", name, commitErr)
		}
		applied++
	}
	return applied, nil
}
