// Package database persists the command relay's operation audit trail in
// sqlite. Writes are best effort from the caller's point of view: an insert
// failure is logged upstream and never changes an HTTP response.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"siem-lab/models"
)

// Store wraps the sqlite handle. It is constructed once at startup and
// passed to the relay server; there is no package-level state.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err = s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS operations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			action TEXT NOT NULL,
			ip TEXT,
			success BOOLEAN DEFAULT 0,
			output TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_created_at ON operations(created_at)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// RecordOperation appends one audited operation.
func (s *Store) RecordOperation(rec models.OperationRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO operations (event_type, action, ip, success, output) VALUES (?, ?, ?, ?, ?)",
		rec.EventType, rec.Action, rec.IPAddress, rec.Success, rec.Output,
	)
	return err
}

// RecentOperations returns up to limit rows, newest first.
func (s *Store) RecentOperations(limit int) ([]models.OperationRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, event_type, action, ip, success, output, created_at FROM operations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.OperationRecord
	for rows.Next() {
		var rec models.OperationRecord
		var ip, output sql.NullString
		if err := rows.Scan(&rec.ID, &rec.EventType, &rec.Action, &ip, &rec.Success, &output, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.IPAddress = ip.String
		rec.Output = output.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CleanupOldOperations deletes rows older than retention. The cutoff is
// bound as a UTC string because created_at values come from sqlite's
// CURRENT_TIMESTAMP, which stores UTC text without a zone offset; binding a
// time.Time directly would compare against an offset-suffixed string and
// skew retention by the host's UTC offset.
func (s *Store) CleanupOldOperations(retention time.Duration) error {
	cutoff := time.Now().Add(-retention).UTC().Format("2006-01-02 15:04:05")
	_, err := s.db.Exec("DELETE FROM operations WHERE created_at < ?", cutoff)
	return err
}
