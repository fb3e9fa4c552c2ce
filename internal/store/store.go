// Package store is the client's durable local storage, the terminal analog
// of origin-scoped browser storage: a SQLite-backed key/value table holding
// the streaming access token, and a cookie table backing a persistent
// http.CookieJar so the backend's session cookie survives process restarts
// the way a browser cookie survives page reloads.
//
// No playlist data ever lives here; the remote API is the only source of
// playlist state.
package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SpotifyTokenKey is the one durable key the application writes: the
// streaming provider's access token.
const SpotifyTokenKey = "spotify_access_token"

const schema = `
CREATE TABLE IF NOT EXISTS local_storage (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS cookies (
	host      TEXT NOT NULL,
	name      TEXT NOT NULL,
	value     TEXT NOT NULL,
	path      TEXT NOT NULL DEFAULT '/',
	expires   TIMESTAMP,
	secure    INTEGER NOT NULL DEFAULT 0,
	http_only INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (host, name, path)
);
`

// Store wraps the SQLite database holding all durable client-side state.
type Store struct {
	db *sql.DB
}

// New creates a Store over an open database connection and ensures the
// schema exists.
func New(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize local storage schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the value stored under key, or "" when the key is absent.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM local_storage WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read local storage key %s: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	query := `
		INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write local storage key %s: %w", key, err)
	}
	return nil
}

// Delete removes key from local storage. Deleting an absent key is not an
// error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM local_storage WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete local storage key %s: %w", key, err)
	}
	return nil
}

// Jar returns a persistent cookie jar backed by this store.
func (s *Store) Jar() *Jar {
	return &Jar{db: s.db}
}
