package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkrelay/inkrelay-server/internal/config"
	"github.com/inkrelay/inkrelay-server/internal/core"
	"github.com/inkrelay/inkrelay-server/internal/store"
	"github.com/inkrelay/inkrelay-server/internal/store/sqlite"
	transporthttp "github.com/inkrelay/inkrelay-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	archive         store.Archiver
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	var archive store.Archiver
	if cfg.ArchivePath != "" {
		ar, err := sqlite.New(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("init archive: %w", err)
		}
		archive = ar
		logger.Info().Str("archive_path", cfg.ArchivePath).Msg("clear-board archive enabled")
	}

	hub := core.NewHub(archive, logger, cfg.HistoryLimit)
	server := transporthttp.NewServer(hub, archive, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		archive:         archive,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the archive and other resources.
func (a *App) cleanup() {
	if a.archive != nil {
		if err := a.archive.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close archive")
		} else {
			a.log.Info().Msg("archive closed")
		}
	}
}
