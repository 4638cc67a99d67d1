// Package storage persists the visit log in a SQLite database under the
// user data directory. It is a convenience feature layered next to the
// chrome: opening the database is best-effort and a failure disables the
// history list, never the browser.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is one row of the visit log.
type Visit struct {
	URL       string
	Title     string
	VisitedAt time.Time
}

// VisitLog records successfully displayed pages.
type VisitLog struct {
	conn *sql.DB
}

// Open opens (or creates) the swb database in the given data directory.
func Open(dataDir string) (*VisitLog, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "swb.db")
	conn, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		url        TEXT    NOT NULL,
		title      TEXT    NOT NULL DEFAULT '',
		visited_at DATETIME NOT NULL DEFAULT (datetime('now'))
	);
	CREATE INDEX IF NOT EXISTS idx_visits_visited_at ON visits(visited_at DESC);
	`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &VisitLog{conn: conn}, nil
}

// Close closes the database connection.
func (v *VisitLog) Close() error {
	return v.conn.Close()
}

// Add records a visit. A repeat of the most recent URL only refreshes
// its timestamp and title, so reloads do not pile up duplicate rows.
func (v *VisitLog) Add(url, title string) error {
	if url == "" {
		return nil
	}

	var lastID int64
	var lastURL string
	err := v.conn.QueryRow(
		"SELECT id, url FROM visits ORDER BY visited_at DESC, id DESC LIMIT 1",
	).Scan(&lastID, &lastURL)
	if err == nil && lastURL == url {
		_, err = v.conn.Exec(
			"UPDATE visits SET visited_at = datetime('now'), title = CASE WHEN ? != '' THEN ? ELSE title END WHERE id = ?",
			title, title, lastID,
		)
		if err != nil {
			return fmt.Errorf("refreshing visit: %w", err)
		}
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("reading last visit: %w", err)
	}

	if _, err := v.conn.Exec("INSERT INTO visits (url, title) VALUES (?, ?)", url, title); err != nil {
		return fmt.Errorf("inserting visit: %w", err)
	}
	return nil
}

// Recent returns up to n visits, newest first.
func (v *VisitLog) Recent(n int) ([]Visit, error) {
	rows, err := v.conn.Query(
		"SELECT url, title, visited_at FROM visits ORDER BY visited_at DESC, id DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var visit Visit
		var ts string
		if err := rows.Scan(&visit.URL, &visit.Title, &ts); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		if parsed, perr := time.Parse("2006-01-02 15:04:05", ts); perr == nil {
			visit.VisitedAt = parsed
		}
		visits = append(visits, visit)
	}
	return visits, rows.Err()
}

// Clear removes every visit.
func (v *VisitLog) Clear() error {
	if _, err := v.conn.Exec("DELETE FROM visits"); err != nil {
		return fmt.Errorf("clearing visits: %w", err)
	}
	return nil
}

// DataDir returns the per-user data directory for the database and log
// file.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "swb")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, "swb")
		} else {
			dir = filepath.Join(home, ".swb")
		}
	default:
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			dir = filepath.Join(xdgData, "swb")
		} else {
			dir = filepath.Join(home, ".local", "share", "swb")
		}
	}
	return dir, nil
}
