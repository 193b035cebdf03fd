package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/smlmotors/showroom/internal/db"
)

type Server struct {
	config   *Config
	server   *http.Server
	db       *sqlx.DB
	services *Services
}

func New(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	sqlDB, err := db.NewSqliteDb(db.WithPath(config.DBPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	services, err := NewServices(config, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	httpHandler := SetupRoutes(services)

	return &Server{
		config:   config,
		db:       sqlDB,
		services: services,
		server: &http.Server{
			Addr:    config.HTTP.Addr,
			Handler: httpHandler,
		},
	}, nil
}

func (s *Server) Services() *Services {
	return s.services
}

func (s *Server) Start(ctx context.Context) error {
	slog.Info("showroom server start")
	defer slog.Info("showroom server stop")

	errCh := make(chan error, 1)
	go func() {
		if err := s.runHTTPServer(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server start error", "error", err)
			errCh <- err
			return
		}
		slog.Info("http server stopped")
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("showroom shutdown signal")
	if err := s.Stop(context.Background()); err != nil {
		slog.Error("showroom shutdown error", "error", err)
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return s.db.Close()
}

func (s *Server) runHTTPServer() error {
	if s.config.HTTP.CertFile != "" && s.config.HTTP.KeyFile != "" {
		slog.Info("server start tls", "addr", s.config.HTTP.Addr, "cert", s.config.HTTP.CertFile, "key", s.config.HTTP.KeyFile)
		return s.server.ListenAndServeTLS(s.config.HTTP.CertFile, s.config.HTTP.KeyFile)
	}
	slog.Info("server start http", "addr", s.config.HTTP.Addr)
	return s.server.ListenAndServe()
}
