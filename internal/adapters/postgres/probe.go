package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// Compile-time interface check.
var _ ports.StatusProbe = (*Probe)(nil)

// Pinger is the part of *DB the probe needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe reports database reachability with a bounded ping. It never writes.
type Probe struct {
	pinger  Pinger
	timeout time.Duration
}

// NewProbe returns a probe that gives each ping at most timeout. A zero
// timeout leaves the caller's context as the only bound.
func NewProbe(pinger Pinger, timeout time.Duration) *Probe {
	return &Probe{pinger: pinger, timeout: timeout}
}

// CheckStatus pings the database.
func (p *Probe) CheckStatus(ctx context.Context) (bool, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.pinger.Ping(ctx); err != nil {
		return false, fmt.Errorf("pinging database: %w", err)
	}
	return true, nil
}
