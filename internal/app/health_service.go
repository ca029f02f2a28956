// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	domainhealth "github.com/jsamuelsen11/sales-master/internal/domain/health"
	"github.com/jsamuelsen11/sales-master/internal/platform/health"
	"github.com/jsamuelsen11/sales-master/internal/platform/registry"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// Compile-time check that HealthService implements ports.HealthService.
var _ ports.HealthService = (*HealthService)(nil)

// ProbeRef names a check in the health report and the registry capability
// that provides its probe.
type ProbeRef struct {
	Check      string
	Capability string
}

// HealthService implements ports.HealthService by running the configured
// probes through the aggregator on every call.
type HealthService struct {
	serviceName string
	aggregator  *health.Aggregator
	probes      []health.NamedProbe
	logger      *slog.Logger
}

// NewHealthService creates a HealthService that reports under serviceName.
// The probe slice is copied; its order is the check order of every report.
func NewHealthService(serviceName string, aggregator *health.Aggregator, probes []health.NamedProbe, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HealthService{
		serviceName: serviceName,
		aggregator:  aggregator,
		probes:      append([]health.NamedProbe(nil), probes...),
		logger:      logger,
	}
}

// Report composes a fresh health report.
func (s *HealthService) Report(ctx context.Context) domainhealth.Report {
	report := s.aggregator.ComposeReport(ctx, s.serviceName, s.probes)

	if !report.Healthy() {
		s.logger.DebugContext(ctx, "health report degraded",
			slog.String("service", s.serviceName),
			slog.Int("checks", len(report.Checks)),
		)
	}
	return report
}

// ResolveProbes looks up the probe for each ref in order. It fails on the
// first ref whose capability is not bound as a ports.StatusProbe.
func ResolveProbes(reg *registry.Registry, refs []ProbeRef) ([]health.NamedProbe, error) {
	probes := make([]health.NamedProbe, 0, len(refs))
	for _, ref := range refs {
		p, err := registry.Resolve[ports.StatusProbe](reg, ref.Capability)
		if err != nil {
			return nil, fmt.Errorf("resolving probe for check %q: %w", ref.Check, err)
		}
		probes = append(probes, health.NamedProbe{Name: ref.Check, Probe: p})
	}
	return probes, nil
}
