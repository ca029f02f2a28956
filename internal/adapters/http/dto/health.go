// Package dto provides HTTP response data transfer objects and error bodies
// for the inbound HTTP adapter layer.
package dto

import (
	"github.com/jsamuelsen11/sales-master/internal/domain/health"
)

// HealthResponse is the JSON body of the health endpoints.
type HealthResponse struct {
	Name      string          `json:"name"`
	Status    string          `json:"status"`
	Uptime    float64         `json:"uptime"`
	Timestamp int64           `json:"timestamp"`
	Checks    []CheckResponse `json:"checks"`
}

// CheckResponse is one dependency check. Status is true when the check passed.
type CheckResponse struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

// LivenessResponse is the body of GET /health/live.
type LivenessResponse struct {
	Status string `json:"status"`
}

// ToHealthResponse converts a domain report to its wire shape. Checks keep
// the report's order and an empty report still encodes "checks": [].
func ToHealthResponse(r *health.Report) HealthResponse {
	checks := make([]CheckResponse, len(r.Checks))
	for i, c := range r.Checks {
		checks[i] = CheckResponse{Name: c.Name, Status: c.OK()}
	}

	return HealthResponse{
		Name:      r.ServiceName,
		Status:    r.Status.String(),
		Uptime:    r.UptimeSeconds(),
		Timestamp: r.ObservedAtEpochMillis(),
		Checks:    checks,
	}
}
