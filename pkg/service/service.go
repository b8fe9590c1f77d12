// Package service implements the FLTS certificate service: a dispatch table
// of named request handlers that fill layout templates with per-record
// values and return the exported documents.
package service

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/gkahiu/fltsd/pkg/logging"
	"github.com/gkahiu/fltsd/pkg/registry"
	"github.com/gkahiu/fltsd/pkg/renderer"
)

// Service identity, also used as the SERVICE query parameter value.
const (
	ServiceName    = "FLTS"
	ServiceVersion = "1.0.0"
)

// Handler executes one named service operation. RequestID is the dispatch
// key and must be non-empty and unique within a Service.
type Handler interface {
	RequestID() string
	Exec(w http.ResponseWriter, params *Params) error
}

// Service dispatches FLTS requests to registered handlers. The handler
// table is built at construction and never mutated afterwards.
type Service struct {
	log      *slog.Logger
	docDir   string
	handlers map[string]Handler
	ids      []string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithDocumentDir sets the directory exported documents are written to.
// Empty means the OS temp directory.
func WithDocumentDir(dir string) Option {
	return func(s *Service) {
		s.docDir = dir
	}
}

// New creates the FLTS service with its standard handlers registered
// against the given template registry.
func New(reg *registry.Registry, opts ...Option) (*Service, error) {
	s := &Service{
		log:      logging.Nop(),
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(s)
	}

	rend := renderer.New(renderer.WithLogger(s.log))
	standard := []Handler{
		NewCapabilitiesHandler(),
		NewStarterCertHandler(reg, rend, s.docDir, s.log),
	}
	for _, h := range standard {
		if err := s.register(h); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name returns the service name.
func (s *Service) Name() string { return ServiceName }

// Version returns the service version.
func (s *Service) Version() string { return ServiceVersion }

// register indexes a handler by its lower-cased request id.
func (s *Service) register(h Handler) error {
	id := h.RequestID()
	if id == "" {
		return fmt.Errorf("handler registered without a request id")
	}
	key := strings.ToLower(id)
	if _, exists := s.handlers[key]; exists {
		return fmt.Errorf("duplicate handler request id %q", id)
	}
	s.handlers[key] = h
	s.ids = append(s.ids, id)
	return nil
}

// SupportedRequests returns the registered operation names, sorted.
func (s *Service) SupportedRequests() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	sort.Strings(ids)
	return ids
}

// ServeHTTP handles every request routed to the FLTS service: it resolves
// the handler from the REQUEST parameter, delegates, and normalizes any
// failure into the JSON error body.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("FLTS service panic",
				"panic", rec,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			NewError(http.StatusInternalServerError, "Internal FLTS service error").WriteResponse(w)
		}
	}()

	params, err := ParseParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if params.Request == "" {
		s.writeError(w, NewError(http.StatusBadRequest, "Null REQUEST parameter"))
		return
	}

	handler, ok := s.handlers[params.Request]
	if !ok {
		s.writeError(w, NewError(http.StatusBadRequest,
			"'%s' is an invalid REQUEST parameter. Must be one of: %s",
			QueryParam(r, ParamRequest), strings.Join(s.SupportedRequests(), ", ")))
		return
	}

	if err := handler.Exec(w, params); err != nil {
		s.writeError(w, err)
	}
}

// writeError logs the failure and writes the structured error body. Errors
// of unanticipated kinds surface as a generic 500.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	se, known := AsServiceError(err)
	if known {
		s.log.Error("FLTS service error", "code", se.Code, "message", se.Message)
	} else {
		s.log.Error("FLTS service internal error", "error", err)
	}
	se.WriteResponse(w)
}
