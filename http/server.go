package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/foorensic/ddns-server/nsupdate"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig holds the configuration for the HTTP API server.
type ServerConfig struct {
	Listen   string
	Username string
	Password string

	// TrustedProxies lists proxies whose forwarding headers are honored
	// when resolving the client address. Empty means the peer address is
	// always used, so an A update without an explicit value resolves to
	// the direct connection source.
	TrustedProxies []string
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
}

// NewServer creates the HTTP API server wired to the given update service.
func NewServer(cfg ServerConfig, svc *nsupdate.Service) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggingMiddleware())

	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	// Public endpoints (no auth).
	engine.GET("/health", HealthHandler)
	engine.GET("/status", StatusHandler)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")
	api.GET("/ip", IPHandler)

	// Authenticated record mutation endpoint.
	authed := api.Group("")
	authed.Use(BasicAuthMiddleware(cfg.Username, cfg.Password))
	{
		h := NewUpdateHandler(svc)
		authed.GET("/:type/:method", h.UpdateRecord)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    cfg.Listen,
			Handler: engine,
		},
		engine: engine,
	}, nil
}

// Start begins listening. It blocks until the server is shut down.
func (s *Server) Start() error {
	slog.Info("HTTP API server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server with a 5-second deadline.
func (s *Server) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

// Engine returns the underlying Gin engine (useful for testing).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
