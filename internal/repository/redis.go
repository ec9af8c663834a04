package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/redis/go-redis/v9"
)

// Redis keeps blobs as plain string values under a key prefix.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// OpenRedis connects and pings the server.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedis(client, cfg.Prefix), nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return blob, nil
}

func (r *Redis) Set(ctx context.Context, key string, blob []byte) error {
	err := r.client.Set(ctx, r.prefix+key, blob, 0).Err()
	if err != nil && strings.HasPrefix(err.Error(), "OOM") {
		return fmt.Errorf("failed to write %s: %w: %v", key, ErrCapacityExceeded, err)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
