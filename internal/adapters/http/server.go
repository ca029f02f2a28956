package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/jsamuelsen11/sales-master/internal/platform/config"
)

// bindHost is the interface the service listens on.
const bindHost = "0.0.0.0"

// Server wraps http.Server and the listener it serves on. Listening and
// serving are separate steps so the caller learns about bind failures before
// the serve loop starts.
type Server struct {
	srv      *http.Server
	listener net.Listener
	logger   *slog.Logger
}

// NewServer creates a new HTTP server from the given config and handler.
// Port 0 asks the OS for a free port.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(bindHost, fmt.Sprint(cfg.Port)),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		logger: logger,
	}
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.listener = ln
	return nil
}

// Serve accepts connections on the bound listener. It blocks until the
// server stops and returns nil on graceful shutdown. Listen must have
// succeeded first.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("http server: Serve called before Listen")
	}
	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests to
// finish. No deadline is imposed here: the drain is bounded only by ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Debug("shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}

// Addr returns the bound address once Listen succeeded, otherwise the
// configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.srv.Addr
}

// Port returns the bound TCP port, or 0 before Listen.
func (s *Server) Port() int {
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}
