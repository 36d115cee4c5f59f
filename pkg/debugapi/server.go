package debugapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	applog "github.com/marmos91/actionlib/internal/logger"
	"github.com/marmos91/actionlib/pkg/actionlib"
)

// Server is the debug API's HTTP server, with the same start/stop shape
// as the rest of the ambient infrastructure: constructed stopped, then
// driven by Start until its context is cancelled.
type Server struct {
	httpServer   *http.Server
	port         int
	shutdownOnce sync.Once
}

// NewServer builds a debug API server listening on port.
func NewServer(action *actionlib.ActionServer, port int, cfg Config) *Server {
	router := NewRouter(action, cfg)
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		port: port,
	}
}

// Start serves the debug API until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		applog.Info("debug API listening", "port", s.port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("debug API server failed: %w", err)
	}
}

// Stop gracefully shuts down the debug API server. Safe to call more
// than once.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("debug API shutdown error: %w", err)
		}
	})
	return shutdownErr
}

// Port returns the TCP port the server listens on.
func (s *Server) Port() int {
	return s.port
}
