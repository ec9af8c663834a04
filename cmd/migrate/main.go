// Command migrate copies the stored posts and theme from the configured
// storage backend into another one.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/logger"
	"github.com/debemdeboas/mdblog/internal/repository"
)

var storageKeys = []string{config.StorageKeyPosts, config.StorageKeyTheme}

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", config.DefaultConfigPath, "config file describing the source storage")
	toBackend := flag.String("to-backend", "", "destination backend (fs, sqlite, badger, redis, s3)")
	toPath := flag.String("to-path", "", "destination path for file based backends")
	toCodec := flag.String("to-codec", "", "destination codec (default: same as the source)")
	flag.Parse()

	if *toBackend == "" {
		fmt.Fprintln(os.Stderr, "The --to-backend flag is required")
		os.Exit(2)
	}

	if err := config.LoadConfig(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, config.ErrLoadConfigFmt+"\n", err)
		os.Exit(1)
	}
	log := logger.New(config.AppConfig.Logging)
	config.SetLogger(log)
	repository.SetLogger(log)

	dst := destination(config.AppConfig.Storage, *toBackend, *toPath, *toCodec)

	ctx := context.Background()
	n, err := run(ctx, config.AppConfig.Storage, dst, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
	log.Info().Int("keys", n).Str("from", config.AppConfig.Storage.Backend).Str("to", dst.Backend).Msg("Migration finished")
}

// destination derives the target storage settings from src. Connection
// settings for redis and s3 are shared with the source.
func destination(src config.StorageConfig, backend, path, codec string) config.StorageConfig {
	dst := src
	dst.Backend = backend
	if path != "" {
		dst.Path = path
	}
	if codec != "" {
		dst.Codec = codec
	}
	return dst
}

func run(ctx context.Context, from, to config.StorageConfig, log zerolog.Logger) (int, error) {
	if from.Backend == to.Backend && from.Path == to.Path {
		return 0, errors.New("source and destination are the same storage")
	}

	src, err := repository.Open(ctx, from)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	dst, err := repository.Open(ctx, to)
	if err != nil {
		return 0, fmt.Errorf("failed to open destination: %w", err)
	}
	defer dst.Close()

	return migrate(ctx, src, dst, log)
}

// migrate copies every known key from src to dst and reports how many
// were present. Both sides decode and encode with their own codec.
func migrate(ctx context.Context, src, dst repository.Storage, log zerolog.Logger) (int, error) {
	copied := 0
	for _, key := range storageKeys {
		blob, err := src.Get(ctx, key)
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("key", key).Msg("Key not present in source, skipping")
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("failed to read %s: %w", key, err)
		}

		if err := dst.Set(ctx, key, blob); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		log.Info().Str("key", key).Int("bytes", len(blob)).Msg("Copied key")
		copied++
	}
	return copied, nil
}
