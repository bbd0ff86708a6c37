// Package history implements SPEC_FULL.md's supplemental command
// history: a sqlite-backed append-only log of every dispatched
// top-level command line, in the same "open once, prepared statements,
// context-scoped calls" idiom the teacher's sqlite mount uses.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded command line.
type Entry struct {
	Line     string
	ExitCode int
	When     time.Time
}

// History wraps a sqlite database holding a single append-only table.
type History struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path —
// ":memory:" is valid for a process-lifetime-only history — and
// ensures the backing table exists.
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}

	h := &History{db: db}
	if err := h.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) initSchema() error {
	_, err := h.db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			line      TEXT NOT NULL,
			exit_code INTEGER NOT NULL,
			recorded  INTEGER NOT NULL
		)`)
	return err
}

// Append records one dispatched command line and its exit code.
func (h *History) Append(ctx context.Context, line string, exitCode int) error {
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO history (line, exit_code, recorded) VALUES (?, ?, ?)`,
		line, exitCode, time.Now().Unix())
	return err
}

// Recent returns up to n entries, most recent first.
func (h *History) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}

	rows, err := h.db.QueryContext(ctx,
		`SELECT line, exit_code, recorded FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var recorded int64
		if err := rows.Scan(&e.Line, &e.ExitCode, &recorded); err != nil {
			return nil, err
		}
		e.When = time.Unix(recorded, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the underlying database handle.
func (h *History) Close() error {
	return h.db.Close()
}
