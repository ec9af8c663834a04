package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/debemdeboas/mdblog/internal/db"
	"github.com/mattn/go-sqlite3"
)

// SQLite keeps blobs in the kv table of a db.Db.
type SQLite struct {
	db db.Db
}

func NewSQLite(d db.Db) *SQLite {
	return &SQLite{db: d}
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.Get().QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return blob, nil
}

func (s *SQLite) Set(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.Get().ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, blob)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrFull || sqliteErr.Code == sqlite3.ErrTooBig) {
			return fmt.Errorf("failed to write %s: %w: %v", key, ErrCapacityExceeded, err)
		}
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
