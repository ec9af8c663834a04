// Package repository persists the post collection and theme as opaque
// blobs in a key-value store, and keeps the in-memory post collection.
package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

var repoLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	repoLogger = l
}

var (
	ErrNotFound         = errors.New("key not found")
	ErrCapacityExceeded = errors.New("storage capacity exceeded")
)

// Storage is a key-value store holding whole blobs. Get returns
// ErrNotFound for an absent key; Set returns ErrCapacityExceeded when the
// blob does not fit.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
	Close() error
}
