// Package infrastructure provides the persistence layer for the audit
// trail: every execution-gate decision is recorded in a local SQLite
// database.
package infrastructure

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// AuditEvent is one recorded gate decision.
type AuditEvent struct {
	ID        int64
	Timestamp time.Time
	SessionID string
	Command   string
	Outcome   string
	ExitCode  int
	Detail    string
}

// AuditStore persists execution-gate decisions.
type AuditStore interface {
	LogEvent(sessionID, command, outcome string, exitCode int, detail string) error
	RecentEvents(sessionID string, limit int) ([]AuditEvent, error)
	Close() error
}

// SQLiteAuditStore implements AuditStore on a local SQLite file.
type SQLiteAuditStore struct {
	db *sql.DB
}

// OpenAuditStore opens (creating if needed) the audit database at path
// and ensures the schema exists.
func OpenAuditStore(path string) (*SQLiteAuditStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create audit database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	store := &SQLiteAuditStore{db: db}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteAuditStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		session_id TEXT NOT NULL,
		command TEXT NOT NULL,
		outcome TEXT NOT NULL,
		exit_code INTEGER NOT NULL,
		detail TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_audit_session ON audit_events(session_id);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return nil
}

// LogEvent records one gate decision. The command is expected to already
// be redacted by the caller.
func (s *SQLiteAuditStore) LogEvent(sessionID, command, outcome string, exitCode int, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO audit_events (session_id, command, outcome, exit_code, detail) VALUES (?, ?, ?, ?, ?)`,
		sessionID, command, outcome, exitCode, detail,
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}
	return nil
}

// RecentEvents returns the latest events for a session, newest first.
// An empty sessionID returns events across all sessions.
func (s *SQLiteAuditStore) RecentEvents(sessionID string, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, timestamp, session_id, command, outcome, exit_code, COALESCE(detail, '')
		FROM audit_events`
	args := []interface{}{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	var events []AuditEvent
	for rows.Next() {
		var e AuditEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SessionID, &e.Command, &e.Outcome, &e.ExitCode, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteAuditStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
