package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"syscall"
	"time"

	"forgesync/internal/domain"
)

// Server is the loopback HTTP listener. Start and Stop are idempotent:
// starting a running server is a no-op and stopping a stopped one returns
// immediately.
type Server struct {
	port    int
	handler http.Handler
	logger  *slog.Logger

	mu         sync.Mutex
	httpServer *http.Server
	running    bool
}

func New(port int, h http.Handler, logger *slog.Logger) *Server {
	return &Server{
		port:    port,
		handler: h,
		logger:  logger,
	}
}

// Port returns the configured listen port.
func (s *Server) Port() int { return s.port }

// Running reports whether the listener is accepting connections.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start binds to the loopback address. A bind failure caused by the port
// being occupied is reported as a PortInUseError.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Debug("server already running", "port", s.port)
		return nil
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return &domain.PortInUseError{Port: s.port}
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Handler:     s.handler,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	s.running = true

	go func(srv *http.Server) {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}(s.httpServer)

	s.logger.Info("server started", "addr", "http://"+addr)
	return nil
}

// Stop shuts the listener down, waiting for in-flight requests up to the
// context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	err := s.httpServer.Shutdown(ctx)
	s.httpServer = nil
	s.running = false

	s.logger.Info("server stopped", "port", s.port)
	return err
}
