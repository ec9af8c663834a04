package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/mdblog/internal/config"
	"github.com/debemdeboas/mdblog/internal/repository"
	"github.com/debemdeboas/mdblog/internal/routes"
)

func TestMain(m *testing.M) {
	setLoggers(zerolog.New(os.Stderr).Level(zerolog.Disabled))
	os.Exit(m.Run())
}

func TestConfigPath(t *testing.T) {
	t.Setenv(config.EnvConfigPath, "")
	if got := configPath(); got != config.DefaultConfigPath {
		t.Errorf("Expected default path, got %q", got)
	}

	t.Setenv(config.EnvConfigPath, "/etc/mdblog.yaml")
	if got := configPath(); got != "/etc/mdblog.yaml" {
		t.Errorf("Expected env path, got %q", got)
	}
}

func TestNewServer(t *testing.T) {
	srv := newServer(context.Background(), config.ServerConfig{Host: "127.0.0.1", Port: "12600"}, http.NotFoundHandler())
	if srv.Addr != "127.0.0.1:12600" {
		t.Errorf("Expected 127.0.0.1:12600, got %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Error("Expected a header timeout")
	}
}

func TestNewApp(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = repository.BackendMemory

	store, err := repository.Open(context.Background(), cfg.Storage)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	handler, err := newApp(context.Background(), cfg, store)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}

	srv := httptest.NewServer(handler)
	defer srv.Close()

	res, err := http.Get(srv.URL + routes.RootPath)
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 OK, got %d", res.StatusCode)
	}

	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Getting Started") {
		t.Error("Expected the seeded sample posts on the page")
	}
}

func TestRunShutsDown(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = repository.BackendMemory
	cfg.Server.Port = "0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, cfg, zerolog.Nop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected clean shutdown, got %v", err)
		}
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Server did not stop")
	}
}
