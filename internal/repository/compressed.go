package repository

import (
	"context"
	"fmt"

	"github.com/debemdeboas/mdblog/internal/util/compression"
)

// Compressed runs every blob of the wrapped storage through a codec.
type Compressed struct {
	Storage
	codec compression.Compressor
}

func NewCompressed(inner Storage, codec compression.Compressor) *Compressed {
	return &Compressed{Storage: inner, codec: codec}
}

func (c *Compressed) Get(ctx context.Context, key string) ([]byte, error) {
	blob, err := c.Storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	out, err := c.codec.Decompress(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress %s: %w", key, err)
	}
	return out, nil
}

func (c *Compressed) Set(ctx context.Context, key string, blob []byte) error {
	packed, err := c.codec.Compress(blob)
	if err != nil {
		return fmt.Errorf("failed to compress %s: %w", key, err)
	}
	return c.Storage.Set(ctx, key, packed)
}
