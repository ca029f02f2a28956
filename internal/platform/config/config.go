// Package config provides configuration loading and validation for the service.
// Configuration is loaded from YAML files with environment variable overrides
// using a layered system: defaults -> base.yaml -> {profile}.yaml -> env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Service   ServiceConfig    `koanf:"service"`
	Server    ServerConfig     `koanf:"server"`
	Log       LogConfig        `koanf:"log"`
	Database  DatabaseConfig   `koanf:"database"`
	Health    HealthConfig     `koanf:"health"`
	Upstreams []UpstreamConfig `koanf:"upstreams"`
	Telemetry TelemetryConfig  `koanf:"telemetry"`
	Profiling ProfilingConfig  `koanf:"profiling"`
}

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	// Name is the label in the startup log line and the health report.
	Name string `koanf:"name"`
}

// ServerConfig holds HTTP server settings. The listener always binds all
// interfaces; only the port is configurable.
type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	// RequestTimeout bounds handler execution. Zero disables the timeout middleware.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	CORS CORSConfig `koanf:"cors"`
}

// CORSConfig holds the cross-origin policy applied to every route.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
	AllowedMethods []string `koanf:"allowed_methods"`
	ExposedHeaders []string `koanf:"exposed_headers"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DatabaseConfig holds the connection URI and pool options for the external
// stateful dependency. The URI may carry credentials and is redacted in logs.
type DatabaseConfig struct {
	URI               string        `koanf:"uri"`
	MaxConns          int32         `koanf:"max_conns"`
	MinConns          int32         `koanf:"min_conns"`
	MaxConnLifetime   time.Duration `koanf:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `koanf:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `koanf:"health_check_period"`
	ConnectTimeout    time.Duration `koanf:"connect_timeout"`
	ApplicationName   string        `koanf:"application_name"`
}

// HealthConfig holds health report settings.
type HealthConfig struct {
	// ProbeTimeout bounds each probe's reachability check.
	ProbeTimeout time.Duration `koanf:"probe_timeout"`

	// MaxConcurrency is the number of probes evaluated at once. 1 runs
	// them sequentially in registration order.
	MaxConcurrency int `koanf:"max_concurrency"`
}

// UpstreamConfig describes a downstream HTTP dependency whose health
// endpoint is reported as a check.
type UpstreamConfig struct {
	Name           string               `koanf:"name"`
	BaseURL        string               `koanf:"base_url"`
	HealthPath     string               `koanf:"health_path"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds client-side token bucket settings.
// A zero RequestsPerSecond disables rate limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// ProfilingConfig holds continuous profiling settings.
type ProfilingConfig struct {
	Enabled       bool   `koanf:"enabled"`
	ServerAddress string `koanf:"server_address"`
	AppName       string `koanf:"app_name"`
}
