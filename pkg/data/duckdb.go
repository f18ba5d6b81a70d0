package data

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb/v2"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	host     VARCHAR PRIMARY KEY,
	kind     VARCHAR NOT NULL,
	payload  VARCHAR NOT NULL,
	saved_at TIMESTAMP NOT NULL
)`

// InitDuckDB opens the database at path, creating parent directories and
// the schema when missing.
func InitDuckDB(path string) (*sql.DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Repository persists screen snapshots across process restarts.
type Repository struct {
	db *sql.DB
}

func NewDuckDBRepository(path string) (*Repository, error) {
	db, err := InitDuckDB(path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db}, nil
}

func (r *Repository) SaveSnapshot(s *Snapshot) error {
	if s == nil || s.Host == "" {
		return fmt.Errorf("snapshot host is required")
	}
	payload, err := s.Encode()
	if err != nil {
		return err
	}
	savedAt := s.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now().UTC()
	}
	_, err = r.db.Exec(
		`INSERT OR REPLACE INTO snapshots (host, kind, payload, saved_at) VALUES (?, ?, ?, ?)`,
		s.Host, string(s.Kind), string(payload), savedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", s.Host, err)
	}
	return nil
}

// GetSnapshot returns the snapshot stored for host, or nil when there is none.
func (r *Repository) GetSnapshot(host string) (*Snapshot, error) {
	var payload string
	err := r.db.QueryRow(`SELECT payload FROM snapshots WHERE host = ?`, host).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", host, err)
	}
	return DecodeSnapshot([]byte(payload))
}

func (r *Repository) ListSnapshots() ([]*Snapshot, error) {
	rows, err := r.db.Query(`SELECT payload FROM snapshots ORDER BY host`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Snapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		s, err := DecodeSnapshot([]byte(payload))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteSnapshot(host string) error {
	_, err := r.db.Exec(`DELETE FROM snapshots WHERE host = ?`, host)
	return err
}

// ClearSnapshots removes every stored snapshot and returns how many were dropped.
func (r *Repository) ClearSnapshots() (int64, error) {
	res, err := r.db.Exec(`DELETE FROM snapshots`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
