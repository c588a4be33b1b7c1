// Package sqlite implements session.Store on top of a local SQLite file.
//
// This is the persistent counterpart of the browser's localStorage: the
// token and user record survive process restarts under the same fixed keys
// the web client used ("token" and "user"), and disappear only on explicit
// logout. modernc.org/sqlite is a pure Go driver, so the client binary
// cross-compiles without a C toolchain.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sakif/devconnect/internal/model"
	"github.com/sakif/devconnect/internal/session"
)

// Fixed storage keys, kept identical to the web client's localStorage keys.
const (
	keyToken = "token"
	keyUser  = "user"
)

// Store persists the session in a single-file SQLite database.
type Store struct {
	conn *sql.DB
}

// Store must satisfy the session.Store interface.
var _ session.Store = (*Store)(nil)

// New opens (or creates) the session database at path and prepares the
// schema. Callers own the returned Store and must Close it.
//
// path examples:
//   - "~/.local/share/devconnect/session.db" (resolved by the caller)
//   - ":memory:" for tests
func New(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session/sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session/sqlite: pinging database: %w", err)
	}

	// WAL keeps reads cheap while a login write is in flight.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session/sqlite: setting WAL mode: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("session/sqlite: running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS session (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating session table: %w", err)
	}
	return nil
}

// Set stores the token and user record in one transaction, so a concurrent
// reader never observes a token without its user or vice versa.
func (s *Store) Set(token string, user model.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session/sqlite: encoding user: %w", err)
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("session/sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	if _, err := tx.Exec(upsert, keyToken, token); err != nil {
		return fmt.Errorf("session/sqlite: storing token: %w", err)
	}
	if _, err := tx.Exec(upsert, keyUser, string(userJSON)); err != nil {
		return fmt.Errorf("session/sqlite: storing user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("session/sqlite: committing session: %w", err)
	}
	return nil
}

// Get returns the stored session. ok is false when no token is stored —
// a half-written row cannot happen because Set is transactional.
func (s *Store) Get() (session.Session, bool, error) {
	var token string
	err := s.conn.QueryRow(`SELECT value FROM session WHERE key = ?`, keyToken).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, false, nil
	}
	if err != nil {
		return session.Session{}, false, fmt.Errorf("session/sqlite: reading token: %w", err)
	}

	var userJSON string
	err = s.conn.QueryRow(`SELECT value FROM session WHERE key = ?`, keyUser).Scan(&userJSON)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, false, fmt.Errorf("session/sqlite: reading user: %w", err)
	}

	sess := session.Session{Token: token}
	if userJSON != "" {
		if err := json.Unmarshal([]byte(userJSON), &sess.User); err != nil {
			return session.Session{}, false, fmt.Errorf("session/sqlite: decoding user: %w", err)
		}
	}
	return sess, true, nil
}

// Clear deletes the session rows. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec(`DELETE FROM session WHERE key IN (?, ?)`, keyToken, keyUser); err != nil {
		return fmt.Errorf("session/sqlite: clearing session: %w", err)
	}
	return nil
}
