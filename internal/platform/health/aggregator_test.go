package health_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	domainhealth "github.com/jsamuelsen11/sales-master/internal/domain/health"
	"github.com/jsamuelsen11/sales-master/internal/platform/health"
	"github.com/jsamuelsen11/sales-master/internal/ports"
	"github.com/jsamuelsen11/sales-master/mocks"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type probeRecord struct {
	name string
	ok   bool
}

type recorder struct {
	mu      sync.Mutex
	records []probeRecord
}

func (r *recorder) RecordProbe(_ context.Context, name string, ok bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, probeRecord{name: name, ok: ok})
}

func constProbe(ok bool, err error) ports.StatusProbe {
	return ports.StatusProbeFunc(func(context.Context) (bool, error) { return ok, err })
}

func TestComposeReport_NoProbes(t *testing.T) {
	t.Parallel()

	agg := health.New(time.Now())
	report := agg.ComposeReport(context.Background(), "Sales Master", nil)

	if report.Status != domainhealth.StatusOK {
		t.Errorf("Status = %q, want %q", report.Status, domainhealth.StatusOK)
	}
	if len(report.Checks) != 0 {
		t.Errorf("len(Checks) = %d, want 0", len(report.Checks))
	}
	if report.ServiceName != "Sales Master" {
		t.Errorf("ServiceName = %q, want %q", report.ServiceName, "Sales Master")
	}
}

func TestComposeReport_SingleHealthyProbe(t *testing.T) {
	t.Parallel()

	probe := mocks.NewMockStatusProbe(t)
	probe.EXPECT().CheckStatus(mock.Anything).Return(true, nil).Once()

	before := time.Now()
	agg := health.New(before)
	report := agg.ComposeReport(context.Background(), "Sales Master", []health.NamedProbe{
		{Name: "Database", Probe: probe},
	})
	after := time.Now()

	if report.Status != domainhealth.StatusOK {
		t.Errorf("Status = %q, want OK", report.Status)
	}
	if len(report.Checks) != 1 || report.Checks[0].Name != "Database" || !report.Checks[0].OK() {
		t.Fatalf("Checks = %+v, want [{Database OK}]", report.Checks)
	}
	if report.Uptime < 0 {
		t.Errorf("Uptime = %v, want >= 0", report.Uptime)
	}
	if ms := report.ObservedAtEpochMillis(); ms < before.UnixMilli() || ms > after.UnixMilli() {
		t.Errorf("ObservedAtEpochMillis = %d, want within [%d, %d]", ms, before.UnixMilli(), after.UnixMilli())
	}
}

func TestComposeReport_ProbeReturnsFalse(t *testing.T) {
	t.Parallel()

	probe := mocks.NewMockStatusProbe(t)
	probe.EXPECT().CheckStatus(mock.Anything).Return(false, nil)

	report := health.New(time.Now()).ComposeReport(context.Background(), "Sales Master", []health.NamedProbe{
		{Name: "Database", Probe: probe},
	})

	if report.Status != domainhealth.StatusDegraded {
		t.Errorf("Status = %q, want DEGRADED", report.Status)
	}
	if report.Checks[0].Status != domainhealth.CheckFail {
		t.Errorf("Checks[0].Status = %q, want FAIL", report.Checks[0].Status)
	}
}

func TestComposeReport_FailureDoesNotStopLaterProbes(t *testing.T) {
	t.Parallel()

	failing := mocks.NewMockStatusProbe(t)
	failing.EXPECT().CheckStatus(mock.Anything).Return(false, errors.New("connection refused"))

	panicking := ports.StatusProbeFunc(func(context.Context) (bool, error) {
		panic("driver bug")
	})

	healthy := mocks.NewMockStatusProbe(t)
	healthy.EXPECT().CheckStatus(mock.Anything).Return(true, nil)

	report := health.New(time.Now()).ComposeReport(context.Background(), "svc", []health.NamedProbe{
		{Name: "Database", Probe: failing},
		{Name: "Search", Probe: panicking},
		{Name: "Cache", Probe: nil},
		{Name: "Billing", Probe: healthy},
	})

	want := []domainhealth.CheckResult{
		{Name: "Database", Status: domainhealth.CheckFail},
		{Name: "Search", Status: domainhealth.CheckFail},
		{Name: "Cache", Status: domainhealth.CheckFail},
		{Name: "Billing", Status: domainhealth.CheckOK},
	}
	if len(report.Checks) != len(want) {
		t.Fatalf("len(Checks) = %d, want %d", len(report.Checks), len(want))
	}
	for i := range want {
		if report.Checks[i] != want[i] {
			t.Errorf("Checks[%d] = %+v, want %+v", i, report.Checks[i], want[i])
		}
	}
	if report.Status != domainhealth.StatusDegraded {
		t.Errorf("Status = %q, want DEGRADED", report.Status)
	}
}

func TestComposeReport_RequeriesEveryCall(t *testing.T) {
	t.Parallel()

	probe := mocks.NewMockStatusProbe(t)
	probe.EXPECT().CheckStatus(mock.Anything).Return(true, nil).Once()
	probe.EXPECT().CheckStatus(mock.Anything).Return(false, nil).Once()

	agg := health.New(time.Now())
	probes := []health.NamedProbe{{Name: "Database", Probe: probe}}

	first := agg.ComposeReport(context.Background(), "svc", probes)
	second := agg.ComposeReport(context.Background(), "svc", probes)

	if first.Status != domainhealth.StatusOK {
		t.Errorf("first Status = %q, want OK", first.Status)
	}
	if second.Status != domainhealth.StatusDegraded {
		t.Errorf("second Status = %q, want DEGRADED", second.Status)
	}
}

func TestComposeReport_UptimeFromClock(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := started.Add(90*time.Second + 500*time.Millisecond)

	agg := health.New(started, health.WithClock(fixedClock{now: now}))
	report := agg.ComposeReport(context.Background(), "svc", nil)

	if got := report.UptimeSeconds(); got != 90.5 {
		t.Errorf("UptimeSeconds() = %v, want 90.5", got)
	}
	if !report.ObservedAt.Equal(now) {
		t.Errorf("ObservedAt = %v, want %v", report.ObservedAt, now)
	}
}

func TestComposeReport_ClockBeforeStartClampsUptime(t *testing.T) {
	t.Parallel()

	started := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	agg := health.New(started, health.WithClock(fixedClock{now: started.Add(-time.Minute)}))

	if up := agg.ComposeReport(context.Background(), "svc", nil).Uptime; up != 0 {
		t.Errorf("Uptime = %v, want 0", up)
	}
}

func TestComposeReport_ConcurrentKeepsRegistrationOrder(t *testing.T) {
	t.Parallel()

	var active, peak atomic.Int32
	slow := func(ok bool, d time.Duration) ports.StatusProbe {
		return ports.StatusProbeFunc(func(context.Context) (bool, error) {
			cur := active.Add(1)
			defer active.Add(-1)
			for {
				p := peak.Load()
				if cur <= p || peak.CompareAndSwap(p, cur) {
					break
				}
			}
			time.Sleep(d)
			return ok, nil
		})
	}

	agg := health.New(time.Now(), health.WithMaxConcurrency(4))
	report := agg.ComposeReport(context.Background(), "svc", []health.NamedProbe{
		{Name: "a", Probe: slow(true, 30*time.Millisecond)},
		{Name: "b", Probe: slow(false, 10*time.Millisecond)},
		{Name: "c", Probe: slow(true, 0)},
	})

	names := make([]string, len(report.Checks))
	for i, c := range report.Checks {
		names[i] = c.Name
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Errorf("check order = %v, want [a b c]", names)
	}
	if report.Checks[1].Status != domainhealth.CheckFail {
		t.Errorf("Checks[1].Status = %q, want FAIL", report.Checks[1].Status)
	}
	if p := peak.Load(); p < 2 {
		t.Errorf("peak concurrency = %d, want probes evaluated in parallel", p)
	}
}

func TestComposeReport_ConcurrentIgnoresRequestCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	agg := health.New(time.Now(), health.WithMaxConcurrency(2))
	report := agg.ComposeReport(ctx, "svc", []health.NamedProbe{
		{Name: "a", Probe: constProbe(true, nil)},
		{Name: "b", Probe: constProbe(true, nil)},
	})

	if report.Status != domainhealth.StatusOK {
		t.Errorf("Status = %q, want OK when probes themselves succeed", report.Status)
	}
}

func TestComposeReport_RecordsEveryProbe(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	agg := health.New(time.Now(), health.WithRecorder(rec))

	agg.ComposeReport(context.Background(), "svc", []health.NamedProbe{
		{Name: "Database", Probe: constProbe(true, nil)},
		{Name: "Search", Probe: constProbe(false, errors.New("timeout"))},
	})

	want := []probeRecord{{name: "Database", ok: true}, {name: "Search", ok: false}}
	if len(rec.records) != len(want) {
		t.Fatalf("records = %+v, want %+v", rec.records, want)
	}
	for i := range want {
		if rec.records[i] != want[i] {
			t.Errorf("records[%d] = %+v, want %+v", i, rec.records[i], want[i])
		}
	}
}

func TestComposeReport_LogsFailureDetail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	agg := health.New(time.Now(), health.WithLogger(logger))
	agg.ComposeReport(context.Background(), "svc", []health.NamedProbe{
		{Name: "Database", Probe: constProbe(false, errors.New("dial tcp 10.0.0.5:5432: connection refused"))},
	})

	out := buf.String()
	if !strings.Contains(out, "health probe failed") {
		t.Errorf("log output missing failure message: %s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Errorf("log output missing error detail: %s", out)
	}
}
