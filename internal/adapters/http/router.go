// Package http provides the inbound HTTP adapter: the route table and the
// server wrapper that owns the network listener.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/sales-master/internal/adapters/http/dto"
	"github.com/jsamuelsen11/sales-master/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/sales-master/internal/platform/registry"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied inside the router in the order given, so it sees the
// matched route pattern. metrics may be nil, in which case /metrics is not
// served.
func NewRouter(
	healthHandler *handlers.HealthHandler,
	metrics http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, http.StatusNotFound,
			fmt.Sprintf("no route for %s %s", req.Method, req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteErrorResponse(w, req, http.StatusMethodNotAllowed, "")
	})

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	return r
}

// Routes returns the route table builder used during startup. It resolves
// the HealthService capability from the populated registry and mounts the
// given request transforms on the router.
func Routes(metrics http.Handler) func(*registry.Registry, ...func(http.Handler) http.Handler) (http.Handler, error) {
	return func(reg *registry.Registry, transforms ...func(http.Handler) http.Handler) (http.Handler, error) {
		service, err := registry.Resolve[ports.HealthService](reg, ports.CapabilityHealthService)
		if err != nil {
			return nil, fmt.Errorf("building routes: %w", err)
		}
		return NewRouter(handlers.NewHealthHandler(service), metrics, transforms...), nil
	}
}
