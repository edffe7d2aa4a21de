package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bkocaman/harbor/database"
	"github.com/bkocaman/harbor/logger"
	"github.com/bkocaman/harbor/observability"
	"github.com/bkocaman/harbor/server/middleware"
)

// Service is the HTTP service assembled by bootstrap: a Gin router serving
// the greeting and message routes, with the static directory mounted as the
// fallback for every unmatched path.
type Service struct {
	engine    *gin.Engine
	config    Config
	pool      database.Pool
	staticDir string
	log       *logger.Logger

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

// New assembles the router and its middleware stack. No socket is opened;
// call Bind to start serving.
func New(cfg Config, pool database.Pool, staticDir string, log *logger.Logger) *Service {
	// Set Gin mode based on global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Service{
		engine:    gin.New(),
		config:    cfg,
		pool:      pool,
		staticDir: staticDir,
		log:       log.WithComponent("server"),
	}

	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.RequestLogger(s.log))
	if cfg.EnableTelemetry {
		// Instruments are no-ops until a host installs a real meter provider.
		m, err := observability.NewMetrics(observability.Meter("harbor/server"))
		if err != nil {
			m = nil
		}
		s.engine.Use(observability.Middleware("harbor", m))
	}

	s.engine.GET("/hello", s.hello)
	s.engine.GET("/message", s.message)
	// Static files back every path no explicit route claims, matching the
	// router shape of nesting a file service under "/".
	s.engine.NoRoute(s.serveStatic)

	return s
}

// Engine returns the underlying Gin engine, mainly for tests and for hosts
// that want to mount extra routes before Bind.
func (s *Service) Engine() *gin.Engine {
	return s.engine
}

// Bind binds addr and begins serving. It returns once the listener is bound
// so the caller knows the port is ready; serving continues in a goroutine.
func (s *Service) Bind(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("server already bound to %s", s.listener.Addr())
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", addr, err)
	}

	var handler http.Handler = s.engine
	if s.config.EnableHTTP2 {
		h2s := &http2.Server{
			MaxConcurrentStreams: 250,
			IdleTimeout:          120 * time.Second,
		}
		handler = h2c.NewHandler(s.engine, h2s)
	}

	s.httpServer = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: s.config.MaxHeaderBytes,
	}
	s.listener = listener

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	s.log.Info("HTTP server started", map[string]interface{}{
		"addr": listener.Addr().String(),
	})
	return nil
}

// Addr returns the bound listen address, or "" before Bind.
func (s *Service) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown gracefully drains in-flight requests and closes the listener.
func (s *Service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	return nil
}
