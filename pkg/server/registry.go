package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gkahiu/fltsd/pkg/httputil"
	"github.com/gkahiu/fltsd/pkg/service"
)

// ServiceRegistry routes requests to named services by the SERVICE query
// parameter, the way OWS front ends dispatch. Services register at startup;
// the registry is not mutated while serving.
type ServiceRegistry struct {
	services map[string]http.Handler
	names    []string
}

// NewServiceRegistry creates an empty registry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{services: make(map[string]http.Handler)}
}

// Register adds a service under the given name. Names are matched
// case-insensitively; empty and duplicate names are rejected.
func (sr *ServiceRegistry) Register(name string, h http.Handler) error {
	if name == "" {
		return fmt.Errorf("service registered without a name")
	}
	key := strings.ToLower(name)
	if _, exists := sr.services[key]; exists {
		return fmt.Errorf("duplicate service name %q", name)
	}
	sr.services[key] = h
	sr.names = append(sr.names, name)
	return nil
}

// Names returns the registered service names, sorted.
func (sr *ServiceRegistry) Names() []string {
	names := make([]string, len(sr.names))
	copy(names, sr.names)
	sort.Strings(names)
	return names
}

// ServeHTTP resolves the SERVICE parameter and delegates to the service.
func (sr *ServiceRegistry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := service.QueryParam(r, service.ParamService)
	if name == "" {
		httputil.WriteError(w, http.StatusBadRequest, "Null SERVICE parameter")
		return
	}

	h, ok := sr.services[strings.ToLower(name)]
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest,
			fmt.Sprintf("'%s' is an invalid SERVICE parameter. Must be one of: %s",
				name, strings.Join(sr.Names(), ", ")))
		return
	}
	h.ServeHTTP(w, r)
}
