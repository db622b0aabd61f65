package artifacts

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/debarchito/time-table-generator/internal/schedule"
)

// schemaSQL mirrors the flat solution so downstream tooling can query the
// timetable without parsing CSV.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS classes (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	day     TEXT NOT NULL,
	time    TEXT NOT NULL,
	subject TEXT NOT NULL,
	teacher TEXT NOT NULL,
	room    TEXT NOT NULL,
	group_ids TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS unassigned (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	subject    TEXT NOT NULL,
	group_id   TEXT NOT NULL,
	occurrence INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_classes_slot ON classes (day, time);
`

// ExportSQLite writes the solution into a SQLite database at path.
func ExportSQLite(ctx context.Context, path string, sol *schedule.Solution) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin sqlite transaction: %w", err)
	}
	defer tx.Rollback()

	insertClass, err := tx.PrepareContext(ctx,
		`INSERT INTO classes (day, time, subject, teacher, room, group_ids) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare class insert: %w", err)
	}
	defer insertClass.Close()

	for _, c := range sol.Classes {
		groups := strings.Join(c.Groups, ", ")
		if _, err := insertClass.ExecContext(ctx, c.Day, c.Time, c.Subject, c.Teacher, c.Room, groups); err != nil {
			return fmt.Errorf("failed to insert class: %w", err)
		}
	}

	insertUnassigned, err := tx.PrepareContext(ctx,
		`INSERT INTO unassigned (subject, group_id, occurrence) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare unassigned insert: %w", err)
	}
	defer insertUnassigned.Close()

	for _, u := range sol.Unassigned {
		if _, err := insertUnassigned.ExecContext(ctx, u.Subject, u.Group, u.Occurrence); err != nil {
			return fmt.Errorf("failed to insert unassigned event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sqlite transaction: %w", err)
	}
	return nil
}
