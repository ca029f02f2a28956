// Package health composes status probe outcomes into a single health report.
// The aggregator holds no state between calls: every report re-queries every
// probe, so the result reflects the dependencies at the moment of the call.
package health

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/sales-master/internal/app/fanout"
	domainhealth "github.com/jsamuelsen11/sales-master/internal/domain/health"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// errProbeReportedDown is logged for probes that return false without an error.
var errProbeReportedDown = errors.New("probe reported dependency unreachable")

// errNilProbe is logged for entries that were registered without a probe.
var errNilProbe = errors.New("no probe bound")

// Clock supplies the current time. time.Now readings carry a monotonic
// component, so uptime computed from them is immune to wall-clock steps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NamedProbe pairs a probe with the check name it reports under.
type NamedProbe struct {
	Name  string
	Probe ports.StatusProbe
}

// ProbeRecorder receives the outcome of every probe invocation.
type ProbeRecorder interface {
	RecordProbe(ctx context.Context, name string, ok bool, elapsed time.Duration)
}

// Aggregator builds health reports from an ordered list of probes.
type Aggregator struct {
	startedAt      time.Time
	clock          Clock
	maxConcurrency int
	logger         *slog.Logger
	recorder       ProbeRecorder
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock overrides the time source. Used by tests.
func WithClock(c Clock) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.clock = c
		}
	}
}

// WithMaxConcurrency sets how many probes may run at once. Values of 1 or
// less evaluate probes one at a time in order.
func WithMaxConcurrency(n int) Option {
	return func(a *Aggregator) { a.maxConcurrency = n }
}

// WithLogger sets the logger used for failed probes.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithRecorder sets the sink for per-probe metrics.
func WithRecorder(r ProbeRecorder) Option {
	return func(a *Aggregator) { a.recorder = r }
}

// New creates an Aggregator that reports uptime relative to startedAt.
func New(startedAt time.Time, opts ...Option) *Aggregator {
	a := &Aggregator{
		startedAt:      startedAt,
		clock:          systemClock{},
		maxConcurrency: 1,
		logger:         slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ComposeReport invokes every probe and returns the resulting report. Checks
// appear in the order of probes. A probe that errors, returns false or
// panics yields a FAIL check and never stops evaluation of the others.
// ComposeReport itself never fails.
func (a *Aggregator) ComposeReport(ctx context.Context, serviceName string, probes []NamedProbe) domainhealth.Report {
	var checks []domainhealth.CheckResult
	if a.maxConcurrency > 1 && len(probes) > 1 {
		checks = a.evaluateConcurrently(ctx, probes)
	} else {
		checks = a.evaluateSequentially(ctx, probes)
	}

	now := a.clock.Now()
	uptime := now.Sub(a.startedAt)
	if uptime < 0 {
		uptime = 0
	}

	return domainhealth.Report{
		ServiceName: serviceName,
		Status:      domainhealth.OverallStatus(checks),
		Uptime:      uptime,
		ObservedAt:  now,
		Checks:      checks,
	}
}

func (a *Aggregator) evaluateSequentially(ctx context.Context, probes []NamedProbe) []domainhealth.CheckResult {
	checks := make([]domainhealth.CheckResult, 0, len(probes))
	for _, p := range probes {
		checks = append(checks, a.evaluate(ctx, p))
	}
	return checks
}

func (a *Aggregator) evaluateConcurrently(ctx context.Context, probes []NamedProbe) []domainhealth.CheckResult {
	// Probe timeouts are the probe's concern, so a canceled request context
	// must not turn unstarted probes into skipped results.
	runCtx := context.WithoutCancel(ctx)

	results := fanout.Run(runCtx, a.maxConcurrency, probes,
		func(ctx context.Context, p NamedProbe) (domainhealth.CheckResult, error) {
			return a.evaluate(ctx, p), nil
		},
	)

	checks := make([]domainhealth.CheckResult, len(results))
	for i, r := range results {
		if r.Err != nil {
			checks[i] = domainhealth.CheckResult{Name: probes[i].Name, Status: domainhealth.CheckFail}
			continue
		}
		checks[i] = r.Value
	}
	return checks
}

func (a *Aggregator) evaluate(ctx context.Context, p NamedProbe) (result domainhealth.CheckResult) {
	result = domainhealth.CheckResult{Name: p.Name, Status: domainhealth.CheckFail}
	start := time.Now()

	defer func() {
		if v := recover(); v != nil {
			a.logger.ErrorContext(ctx, "health probe panicked",
				slog.String("check", p.Name),
				slog.Any("panic", v),
			)
			result.Status = domainhealth.CheckFail
		}
		if a.recorder != nil {
			a.recorder.RecordProbe(ctx, p.Name, result.OK(), time.Since(start))
		}
	}()

	if p.Probe == nil {
		a.logFailure(ctx, p.Name, errNilProbe)
		return result
	}

	ok, err := p.Probe.CheckStatus(ctx)
	switch {
	case err != nil:
		a.logFailure(ctx, p.Name, err)
	case !ok:
		a.logFailure(ctx, p.Name, errProbeReportedDown)
	default:
		result.Status = domainhealth.CheckOK
	}
	return result
}

func (a *Aggregator) logFailure(ctx context.Context, name string, err error) {
	a.logger.WarnContext(ctx, "health probe failed",
		slog.String("check", name),
		slog.Any("error", err),
	)
}
