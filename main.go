package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/db"
	"github.com/debemdeboas/mdblog/internal/editor"
	"github.com/debemdeboas/mdblog/internal/logger"
	"github.com/debemdeboas/mdblog/internal/render"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/sse"
	"github.com/debemdeboas/mdblog/internal/theme"
	"github.com/debemdeboas/mdblog/internal/web"
)

const shutdownTimeout = 5 * time.Second

func main() {
	envErr := godotenv.Load()

	if err := config.LoadConfig(configPath()); err != nil {
		fmt.Fprintf(os.Stderr, config.ErrLoadConfigFmt+"\n", err)
		os.Exit(1)
	}

	log := logger.New(config.AppConfig.Logging)
	setLoggers(log)
	if envErr != nil {
		log.Debug().Err(envErr).Msg("No .env file loaded")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.AppConfig, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
	log.Info().Msg("Server stopped")
}

func configPath() string {
	if path := os.Getenv(config.EnvConfigPath); path != "" {
		return path
	}
	return config.DefaultConfigPath
}

func setLoggers(l zerolog.Logger) {
	config.SetLogger(l.With().Str("component", "config").Logger())
	db.SetLogger(l.With().Str("component", "db").Logger())
	repository.SetLogger(l.With().Str("component", "repository").Logger())
	render.SetLogger(l.With().Str("component", "render").Logger())
	editor.SetLogger(l.With().Str("component", "editor").Logger())
	web.SetLogger(l.With().Str("component", "web").Logger())
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf(config.ErrOpenStorageFmt, err)
	}
	defer store.Close()

	handler, err := newApp(ctx, cfg, store)
	if err != nil {
		return err
	}

	srv := newServer(ctx, cfg.Server, handler)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", srv.Addr).Msg("Listening")

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newApp wires the editor to its storage and the HTTP layer. Notices go
// to the board shown on page load and to every open page over SSE.
func newApp(ctx context.Context, cfg *config.Config, store repository.Storage) (*web.Handler, error) {
	clients := sse.NewSSEClients()
	board := editor.NewNoticeBoard(time.Duration(cfg.Editor.NoticeSeconds) * time.Second)

	controller := editor.New(store,
		editor.WithEditorConfig(cfg.Editor),
		editor.WithDefaultTheme(theme.Parse(cfg.Theme.Default)),
		editor.WithNotifier(editor.Notifiers{board, web.NoticeBroadcaster(clients)}),
	)
	controller.Init(ctx)
	if cfg.Editor.WarmCache {
		controller.WarmPreviews()
	}

	return web.NewHandler(controller, clients, board)
}

// newServer ties request contexts to ctx so open event streams end on
// shutdown.
func newServer(ctx context.Context, cfg config.ServerConfig, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}
