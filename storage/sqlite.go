// Package storage is the durable key-value store behind the rankings cache and
// user annotations. Values are JSON documents, one row per key, and writes
// replace the previous value.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"

	_ "github.com/glebarez/go-sqlite"
)

// SQLite is a key-value store in a single SQLite table.
type SQLite struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "storage: open %s", path)
	}
	// One connection keeps single-key writes serialized.
	db.SetMaxOpenConns(1)

	_, err = db.ExecContext(ctx, `
    CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );`)
	if err != nil {
		db.Close()
		return nil, eris.Wrap(err, "storage: create schema")
	}

	return &SQLite{db: db}, nil
}

// Get decodes the value stored at key into dst. It reports false, leaving dst
// untouched, when the key is absent.
func (s *SQLite) Get(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "storage: get %q", key)
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, eris.Wrapf(err, "storage: decode %q", key)
	}
	return true, nil
}

// Set stores value at key, replacing what was there.
func (s *SQLite) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return eris.Wrapf(err, "storage: encode %q", key)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(raw))
	if err != nil {
		return eris.Wrapf(err, "storage: set %q", key)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return eris.Wrapf(err, "storage: delete %q", key)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
