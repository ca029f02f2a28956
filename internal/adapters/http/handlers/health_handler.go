// Package handlers implements the inbound HTTP handlers for the service's
// health surface.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/sales-master/internal/adapters/http/dto"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

const statusAlive = "ok"

// HealthHandler serves the health, liveness and readiness endpoints.
type HealthHandler struct {
	service ports.HealthService
}

// NewHealthHandler creates a HealthHandler backed by the given service.
func NewHealthHandler(service ports.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /health. It always answers 200 while the process is
// serving; a failed dependency shows up as status DEGRADED in the body.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	report := h.service.Report(r.Context())
	writeJSON(w, r, http.StatusOK, dto.ToHealthResponse(&report))
}

// Liveness handles GET /health/live. It never touches dependencies.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.LivenessResponse{Status: statusAlive})
}

// Readiness handles GET /health/ready. Returns 200 when every check passes
// and 503 otherwise, with the full report as the body in both cases.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	report := h.service.Report(r.Context())

	code := http.StatusOK
	if !report.Healthy() {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, r, code, dto.ToHealthResponse(&report))
}
