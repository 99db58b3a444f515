// Package session persists the local session: auth token, cached profile,
// and the last-visited screen. It is the client-side analog of the portal's
// browser storage, with the same logout-clears-all policy.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/terpdesk/terpdesk/internal/api"
)

const (
	keyToken      = "token"
	keyProfile    = "profile"
	keyLastScreen = "last_screen"
)

// Store is a small key/value store backed by SQLite. It satisfies
// api.TokenSource so the API client reads the live token on every call.
type Store struct {
	conn       *sql.DB
	expireOnce sync.Once
}

// Open creates or opens the session database at the given path, creating
// parent directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS session (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM session WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.conn.Exec("INSERT OR REPLACE INTO session (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("write session %s: %w", key, err)
	}
	return nil
}

// Token returns the stored auth token, empty when logged out.
func (s *Store) Token() (string, error) {
	return s.get(keyToken)
}

// SetToken stores the auth token issued at login.
func (s *Store) SetToken(token string) error {
	return s.set(keyToken, token)
}

// Profile returns the cached profile, or nil when none is stored.
func (s *Store) Profile() (*api.Profile, error) {
	raw, err := s.get(keyProfile)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var profile api.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &profile, nil
}

// SetProfile caches the profile alongside the token.
func (s *Store) SetProfile(profile api.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.set(keyProfile, string(raw))
}

// LastScreen returns the screen to restore on next launch.
func (s *Store) LastScreen() (string, error) {
	return s.get(keyLastScreen)
}

// SetLastScreen records the screen to restore on next launch.
func (s *Store) SetLastScreen(screen string) error {
	return s.set(keyLastScreen, screen)
}

// Clear removes everything: token, profile, and navigation state go
// together on logout.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec("DELETE FROM session"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// HandleExpiry runs fn once per process even when several in-flight calls
// report an expired session at the same time.
func (s *Store) HandleExpiry(fn func()) {
	s.expireOnce.Do(fn)
}
