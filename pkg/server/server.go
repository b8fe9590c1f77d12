// Package server hosts registered services behind a single HTTP endpoint.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gkahiu/fltsd/pkg/httputil"
	"github.com/gkahiu/fltsd/pkg/logging"
)

// Server is the fltsd HTTP server.
type Server struct {
	addr       string
	log        *slog.Logger
	registry   *ServiceRegistry
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Server listening on addr with an empty service registry.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		log:      logging.Nop(),
		registry: NewServiceRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("/", s.logged(s.registry))

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Registry returns the service registry for startup registration.
func (s *Server) Registry() *ServiceRegistry {
	return s.registry
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("server listening", "addr", s.addr, "services", s.registry.Names())
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// logged wraps a handler with request logging.
func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
