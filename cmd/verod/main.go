// Command verod runs the landing page server: live pages, the in-place
// builder and the dashboard, backed by a single BuntDB file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/verolabs/vero/internal/server"
	"github.com/verolabs/vero/pkg/logging"
	"github.com/verolabs/vero/pkg/store"
)

type config struct {
	Addr           string   `env:"VERO_ADDR" envDefault:":8080"`
	StorePath      string   `env:"VERO_STORE" envDefault:"vero.db"`
	LogLevel       string   `env:"VERO_LOG_LEVEL" envDefault:"info"`
	LogJSON        bool     `env:"VERO_LOG_JSON" envDefault:"false"`
	AllowedOrigins []string `env:"VERO_ORIGINS" envSeparator:","`
	DevMode        bool     `env:"VERO_DEV" envDefault:"false"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "verod:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	log := logging.New(logging.Options{
		Level:  parseLevel(cfg.LogLevel),
		Output: os.Stderr,
		JSON:   cfg.LogJSON,
	})

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("open store %s: %w", cfg.StorePath, err)
	}
	defer st.Close()
	log.Info("store open", logging.String("path", cfg.StorePath))

	srv := server.New(server.Config{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		DevMode:        cfg.DevMode,
	}, store.NewCatalog(st), log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
