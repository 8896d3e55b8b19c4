package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
	"github.com/FACorreiaa/go-claims-templui/internal/routes"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	deps   *routes.Dependencies
	router http.Handler
}

// New creates a Server with its backend client and credential decoder.
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	deps, err := routes.NewDependencies(cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn("SESSION_SECRET not set, using default (INSECURE - set environment variable in production)")
	}
	logger.Info("Claims backend configured",
		zap.String("base_url", cfg.Backend.BaseURL),
		zap.Duration("timeout", cfg.Backend.Timeout))

	return &Server{
		cfg:    cfg,
		logger: logger,
		deps:   deps,
	}, nil
}

// HTTPServer creates and configures the HTTP server. The write timeout leaves
// room for the backend's damage analysis.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: s.cfg.Backend.Timeout + 30*time.Second,
	}
}

func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

func (s *Server) Dependencies() *routes.Dependencies {
	return s.deps
}

func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
