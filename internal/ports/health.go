package ports

import (
	"context"

	"github.com/jsamuelsen11/sales-master/internal/domain/health"
)

// StatusProbe is implemented by every monitored subsystem that can report its
// reachability. Examples: database connections, downstream HTTP APIs.
type StatusProbe interface {
	// CheckStatus performs a lightweight reachability check against the
	// underlying dependency. It must not mutate dependency state.
	// Implementations own their timeout; the caller does not bound the call.
	// A false result and a non-nil error are both reported as a failed check.
	CheckStatus(ctx context.Context) (bool, error)
}

// StatusProbeFunc adapts a plain function into a StatusProbe.
type StatusProbeFunc func(ctx context.Context) (bool, error)

// CheckStatus calls f(ctx).
func (f StatusProbeFunc) CheckStatus(ctx context.Context) (bool, error) {
	return f(ctx)
}

// HealthService produces the composite health report for this process.
// Implemented by the application layer; called by the health handlers.
type HealthService interface {
	// Report queries every registered probe and returns a fresh report.
	// It never fails: probe failures are reflected as FAIL checks.
	Report(ctx context.Context) health.Report
}
