package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/sales-master/internal/platform/config"
	"github.com/jsamuelsen11/sales-master/internal/platform/httpclient"
	"github.com/jsamuelsen11/sales-master/internal/platform/telemetry"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// Compile-time interface check.
var _ ports.StatusProbe = (*Probe)(nil)

// Probe reports whether one upstream's health endpoint answers with a status
// below 400.
type Probe struct {
	client     *httpclient.Client
	healthPath string
	logger     *slog.Logger
}

// New builds the HTTP client for cfg and wraps it in a Probe.
func New(cfg *config.UpstreamConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Probe {
	return NewProbe(httpclient.New(cfg, metrics, logger), cfg.HealthPath, logger)
}

// NewProbe wraps an existing client. healthPath is joined to the client's
// base URL on every check.
func NewProbe(client *httpclient.Client, healthPath string, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Probe{client: client, healthPath: healthPath, logger: logger}
}

// Name returns the upstream's configured name.
func (p *Probe) Name() string {
	return p.client.Name()
}

// CheckStatus issues GET base_url+health_path. The response body is drained
// and closed before returning.
func (p *Probe) CheckStatus(ctx context.Context) (bool, error) {
	if p.client.BreakerOpen() {
		return false, fmt.Errorf("%s: %w", p.client.Name(), ErrCircuitOpen)
	}

	resp, err := p.client.Get(ctx, p.healthPath)
	if resp != nil {
		defer p.closeBody(ctx, resp)
	}

	// A retryable status that exhausted its retries comes back with both
	// resp and err set; classify it by status.
	if resp != nil && resp.StatusCode >= http.StatusBadRequest {
		return false, newStatusError(p.client.Name(), resp)
	}
	if err != nil {
		return false, fmt.Errorf("probing %s: %w", p.client.Name(), err)
	}
	return true, nil
}

// Shutdown releases pooled connections. The registry calls it at stop.
func (p *Probe) Shutdown() {
	p.client.CloseIdleConnections()
}

func (p *Probe) closeBody(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
	if err := resp.Body.Close(); err != nil {
		p.logger.WarnContext(ctx, "failed to close response body",
			slog.String("upstream", p.client.Name()),
			slog.String("error", err.Error()),
		)
	}
}
