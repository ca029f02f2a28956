package config

import "time"

const (
	defaultServiceName = "Sales Master"
	defaultServerPort  = 8080

	defaultDatabaseMaxConns = 10
	defaultDatabaseMinConns = 1

	defaultHealthMaxConcurrency = 1

	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 5
	defaultCircuitBreakerHalfOpen    = 1

	defaultUpstreamTimeout       = 5 * time.Second
	defaultRetryInitialInterval  = 100 * time.Millisecond
	defaultRetryMaxInterval      = 2 * time.Second
	defaultCircuitBreakerTimeout = 30 * time.Second
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
// Every key that should be overridable from the environment must appear here
// or in a YAML layer, since env vars are matched against known keys.
func defaults() map[string]any {
	return map[string]any{
		"service.name": defaultServiceName,

		"server.port":            defaultServerPort,
		"server.read_timeout":    "5s",
		"server.write_timeout":   "10s",
		"server.idle_timeout":    "120s",
		"server.request_timeout": "0s",

		"server.cors.allowed_origins": []string{"*"},
		"server.cors.allowed_methods": []string{"POST", "GET", "PUT", "OPTIONS", "PATCH", "DELETE"},
		"server.cors.exposed_headers": []string{"X-file-name"},

		"log.level":  "info",
		"log.format": "json",

		"database.uri":                 "",
		"database.max_conns":           defaultDatabaseMaxConns,
		"database.min_conns":           defaultDatabaseMinConns,
		"database.max_conn_lifetime":   "1h",
		"database.max_conn_idle_time":  "30m",
		"database.health_check_period": "1m",
		"database.connect_timeout":     "5s",
		"database.application_name":    "sales-master",

		"health.probe_timeout":   "2s",
		"health.max_concurrency": defaultHealthMaxConcurrency,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "sales-master",

		"profiling.enabled":        false,
		"profiling.server_address": "",
		"profiling.app_name":       "sales-master",
	}
}

// upstreamDefaults fills zero-valued fields of an upstream entry. Upstreams
// are a YAML list, so their defaults cannot be expressed as flat keys.
func upstreamDefaults(u UpstreamConfig) UpstreamConfig {
	if u.HealthPath == "" {
		u.HealthPath = "/health"
	}
	if u.Timeout == 0 {
		u.Timeout = defaultUpstreamTimeout
	}
	if u.Retry.MaxAttempts == 0 {
		u.Retry.MaxAttempts = defaultRetryMaxAttempts
	}
	if u.Retry.InitialInterval == 0 {
		u.Retry.InitialInterval = defaultRetryInitialInterval
	}
	if u.Retry.MaxInterval == 0 {
		u.Retry.MaxInterval = defaultRetryMaxInterval
	}
	if u.Retry.Multiplier == 0 {
		u.Retry.Multiplier = defaultRetryMultiplier
	}
	if u.CircuitBreaker.MaxFailures == 0 {
		u.CircuitBreaker.MaxFailures = defaultCircuitBreakerMaxFailures
	}
	if u.CircuitBreaker.Timeout == 0 {
		u.CircuitBreaker.Timeout = defaultCircuitBreakerTimeout
	}
	if u.CircuitBreaker.HalfOpenLimit == 0 {
		u.CircuitBreaker.HalfOpenLimit = defaultCircuitBreakerHalfOpen
	}
	return u
}
