// Package storage provides persistence for wcd visit history.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	path TEXT PRIMARY KEY,
	expression TEXT NOT NULL DEFAULT '',
	count INTEGER NOT NULL DEFAULT 0,
	first_visited TEXT NOT NULL,
	last_visited TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_visits_last ON visits(last_visited);
`

// Visit is one directory wcd resolved to.
type Visit struct {
	Path         string    `json:"path"`
	Expression   string    `json:"expression"`
	Count        int       `json:"count"`
	FirstVisited time.Time `json:"first_visited"`
	LastVisited  time.Time `json:"last_visited"`
}

// ListOptions specifies filters for listing visits.
type ListOptions struct {
	Prefix string
	Limit  int
}

// History wraps the SQLite database connection.
type History struct {
	db   *sql.DB
	path string
}

// OpenHistory opens or creates a history database at the given path.
func OpenHistory(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &History{db: db, path: path}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *History) Path() string {
	return h.path
}

// Record stores a visit to path, bumping its count.
func (h *History) Record(path, expression string, at time.Time) error {
	ts := at.UTC().Format(time.RFC3339)
	_, err := h.db.Exec(`
		INSERT INTO visits (path, expression, count, first_visited, last_visited)
		VALUES (?, ?, 1, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			expression = excluded.expression,
			count = count + 1,
			last_visited = excluded.last_visited
	`, path, expression, ts, ts)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// Get retrieves the visit for path, or nil if there is none.
func (h *History) Get(path string) (*Visit, error) {
	row := h.db.QueryRow(`
		SELECT path, expression, count, first_visited, last_visited
		FROM visits WHERE path = ?
	`, path)

	v, err := scanVisit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return v, err
}

// List retrieves visits, most recent first.
func (h *History) List(opts ListOptions) ([]*Visit, error) {
	query := "SELECT path, expression, count, first_visited, last_visited FROM visits WHERE 1=1"
	args := []interface{}{}

	if opts.Prefix != "" {
		query += " AND (path = ? OR path LIKE ?)"
		args = append(args, opts.Prefix, filepath.Join(opts.Prefix, "%"))
	}

	query += " ORDER BY last_visited DESC, count DESC, path"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	var visits []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	return visits, rows.Err()
}

// Delete removes the visit for path.
func (h *History) Delete(path string) error {
	result, err := h.db.Exec("DELETE FROM visits WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("delete visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("visit not found: %s", path)
	}

	return nil
}

// Clear removes every visit.
func (h *History) Clear() error {
	if _, err := h.db.Exec("DELETE FROM visits"); err != nil {
		return fmt.Errorf("clear visits: %w", err)
	}
	return nil
}

// Prune removes visits whose path no longer satisfies exists and returns
// how many were removed.
func (h *History) Prune(exists func(path string) bool) (int, error) {
	visits, err := h.List(ListOptions{})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, v := range visits {
		if exists(v.Path) {
			continue
		}
		if err := h.Delete(v.Path); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// Count returns the number of recorded paths.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM visits").Scan(&count)
	return count, err
}

// scanner interface for both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(s scanner) (*Visit, error) {
	var v Visit
	var first, last string

	if err := s.Scan(&v.Path, &v.Expression, &v.Count, &first, &last); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan visit: %w", err)
	}

	v.FirstVisited, _ = time.Parse(time.RFC3339, first)
	v.LastVisited, _ = time.Parse(time.RFC3339, last)

	return &v, nil
}
