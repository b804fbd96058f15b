package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server serves the control API on the configured address
type Server struct {
	logger *zap.Logger
	api    *API
	engine *gin.Engine
	http   *http.Server
	addr   string
}

// NewServer builds the gin engine with its middleware and routes
func NewServer(logger *zap.Logger, addr string, api *API) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(logger))
	engine.Use(CORS())

	registerRoutes(engine, api)

	return &Server{
		logger: logger,
		api:    api,
		engine: engine,
		addr:   addr,
	}
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start listens on the address and serves in a goroutine.
// It returns once the listener is bound (non-blocking).
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.http = &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("Control API listening", zap.String("addr", ln.Addr().String()))

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Control API stopped unexpectedly", zap.Error(err))
		}
	}()
	return nil
}

// Stop cancels background jobs and shuts the server down gracefully
func (s *Server) Stop(ctx context.Context) error {
	s.api.Close()
	if s.http == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down control API: %w", err)
	}
	s.logger.Info("Control API stopped")
	return nil
}
