package internal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Storage keys. Fixed names, one owner per key.
const (
	keyAccessToken = "accessToken"
	keyChatSession = "chatSession"
)

// ErrNotFound is returned when a storage key has no value
var ErrNotFound = errors.New("not found")

// Store is the durable local state store backing the client: the bearer
// token and the chat session blob live in a single-file SQLite database.
// Single UI thread semantics: one writer per key, last write wins.
type Store struct {
	db *sql.DB
}

// DefaultStatePath returns the default location of the state database
func DefaultStatePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".certipro", "state.db"), nil
}

// OpenStore opens (creating if necessary) the state database at path
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("state database ping failed: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS clientState (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or ErrNotFound
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM clientState WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("state query failed: %w", err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO clientState (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("state write failed: %w", err)
	}
	return nil
}

// Delete removes key from the store. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM clientState WHERE key = ?", key); err != nil {
		return fmt.Errorf("state delete failed: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when logged out. The token is
// re-read on every call so that an external logout (another process clearing
// the key) is observed immediately, like the browser's storage listener.
func (s *Store) Token() string {
	token, err := s.Get(keyAccessToken)
	if err != nil {
		return ""
	}
	return token
}

// SetToken stores the bearer token
func (s *Store) SetToken(token string) error {
	return s.Set(keyAccessToken, token)
}

// ClearToken removes the bearer token
func (s *Store) ClearToken() error {
	return s.Delete(keyAccessToken)
}

// LoadSession restores the persisted chat session. A session id with no
// transcript is still restored so a history fetch can recover messages.
// Returns nil when nothing is persisted.
func (s *Store) LoadSession() (*Session, error) {
	blob, err := s.Get(keyChatSession)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(blob), &session); err != nil {
		return nil, fmt.Errorf("failed to parse stored session: %w", err)
	}
	return &session, nil
}

// SaveSession persists the chat session blob. Called after every message
// list or session id change.
func (s *Store) SaveSession(session *Session) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return s.Set(keyChatSession, string(blob))
}

// ClearSession removes the persisted chat session
func (s *Store) ClearSession() error {
	return s.Delete(keyChatSession)
}
