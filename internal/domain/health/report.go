// Package health holds the composite health report produced for the service
// and the per-dependency check results it is built from.
package health

import "time"

// Status is the overall state of a Report.
type Status string

const (
	StatusOK       Status = "OK"
	StatusDegraded Status = "DEGRADED"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// CheckStatus is the outcome of a single probe.
type CheckStatus string

const (
	CheckOK   CheckStatus = "OK"
	CheckFail CheckStatus = "FAIL"
)

// String implements fmt.Stringer.
func (s CheckStatus) String() string {
	return string(s)
}

// CheckResult is the outcome of one named probe. It is a value type and is
// never modified after the aggregator produces it.
type CheckResult struct {
	Name   string
	Status CheckStatus
}

// OK reports whether the check passed.
func (c CheckResult) OK() bool {
	return c.Status == CheckOK
}

// Report is a single snapshot combining process uptime with every probe
// outcome observed at one instant. Checks are in probe registration order.
type Report struct {
	ServiceName string
	Status      Status
	Uptime      time.Duration
	ObservedAt  time.Time
	Checks      []CheckResult
}

// UptimeSeconds returns the uptime as fractional seconds.
func (r Report) UptimeSeconds() float64 {
	return r.Uptime.Seconds()
}

// ObservedAtEpochMillis returns the wall-clock assembly time in Unix milliseconds.
func (r Report) ObservedAtEpochMillis() int64 {
	return r.ObservedAt.UnixMilli()
}

// Healthy reports whether the overall status is OK.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// OverallStatus derives the report status from its checks. It is OK only when
// every check is OK; an empty set of checks is OK.
func OverallStatus(checks []CheckResult) Status {
	for _, c := range checks {
		if !c.OK() {
			return StatusDegraded
		}
	}
	return StatusOK
}
