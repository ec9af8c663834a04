// Package compression wraps the codecs used for persisted blobs.
package compression

import "fmt"

// Compressor is implemented by every codec stored blobs can go through.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// None stores blobs as they are.
type None struct{}

func (None) Compress(data []byte) ([]byte, error)   { return data, nil }
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// For resolves a codec name from the storage configuration.
func For(name string) (Compressor, error) {
	switch name {
	case "zstd":
		return ZstdCompressor{}, nil
	case "gzip":
		return GzipCompressor{}, nil
	case "none", "":
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
