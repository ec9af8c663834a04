package repository

import (
	"context"
	"fmt"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/db"
	"github.com/debemdeboas/mdblog/internal/util/compression"
)

const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendS3     = "s3"
)

// Open builds the storage backend named by cfg.Backend. Every backend
// except memory runs its blobs through the configured codec.
func Open(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	var store Storage
	var err error

	switch cfg.Backend {
	case BackendMemory:
		return NewMemory(cfg.QuotaBytes), nil
	case BackendFS:
		store, err = NewFS(cfg.Path)
	case BackendSQLite:
		sqlite := db.NewSQLite(cfg.Path)
		if err = sqlite.InitDb(); err == nil {
			store = NewSQLite(sqlite)
		}
	case BackendBadger:
		store, err = OpenBadger(cfg.Path)
	case BackendRedis:
		store, err = OpenRedis(ctx, cfg.Redis)
	case BackendS3:
		store, err = OpenS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	codec, err := compression.For(cfg.Codec)
	if err != nil {
		store.Close()
		return nil, err
	}

	repoLogger.Info().Str("backend", cfg.Backend).Str("codec", cfg.Codec).Msg("Storage opened")
	return NewCompressed(store, codec), nil
}
