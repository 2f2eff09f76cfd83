// Package server runs the HTTP server and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appServices "github.com/roadwise/roadwise/internal/app/services"
	"github.com/roadwise/roadwise/internal/bootstrap"
	"github.com/roadwise/roadwise/internal/config"
	"github.com/roadwise/roadwise/internal/pkg/logger"
)

// How often expired refresh tokens are purged
const tokenCleanupInterval = time.Hour

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	dbPool *pgxpool.Pool
	deps   *bootstrap.Dependencies
	http   *http.Server

	stopCleanup context.CancelFunc
}

// NewServer creates and initializes a new server instance by calling the
// bootstrap functions in order.
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps)

	return &Server{
		config: cfg,
		router: router,
		dbPool: dbPool,
		deps:   deps,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	cleanupCtx, cancel := context.WithCancel(context.Background())
	s.stopCleanup = cancel
	go appServices.RunTokenCleanup(cleanupCtx, s.deps.Repos.Token, tokenCleanupInterval)

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.stopCleanup != nil {
		s.stopCleanup()
	}

	if s.http != nil {
		logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			logger.Info().Msg("HTTP server gracefully stopped")
		}
	}

	if s.dbPool != nil {
		logger.Info().Msg("Closing database connection pool...")
		s.dbPool.Close()
	}

	logger.Info().Msg("Server shutdown complete")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
