// Package server wires the scraping pipeline into an HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gh-contrib-api/internal/usecase"
)

// Server owns the HTTP listener for the API.
type Server struct {
	server *http.Server
	logger zerolog.Logger
}

// NewServer builds the gin engine, middleware and routes for the API.
func NewServer(service *usecase.Service, host string, port int, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(requestLogger(logger), gin.Recovery())

	NewHandler(service, logger).RegisterRoutes(engine)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting API server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server, letting in-flight requests finish.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info().Msg("stopping API server")
	return s.server.Shutdown(ctx)
}
