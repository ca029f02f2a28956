package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Service.validate(),
		c.Server.validate(),
		c.Log.validate(),
		c.Database.validate(),
		c.Health.validate(),
		c.validateUpstreams(),
		c.Telemetry.validate(),
		c.Profiling.validate(),
	)
}

func (s *ServiceConfig) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("service.name must not be empty")
	}
	return nil
}

func (s *ServerConfig) validate() error {
	var errs []error

	if s.Port < 1 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port))
	}
	if s.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if s.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	if s.RequestTimeout < 0 {
		errs = append(errs, errors.New("server.request_timeout must not be negative"))
	}
	if len(s.CORS.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("server.cors.allowed_origins must not be empty"))
	}

	return errors.Join(errs...)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	if d.URI == "" {
		errs = append(errs, errors.New("database.uri must not be empty"))
	} else if u, err := url.Parse(d.URI); err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		// The URI itself is never echoed: it may carry credentials.
		errs = append(errs, errors.New("database.uri must be a postgres:// or postgresql:// URL"))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns must be between 0 and max_conns, got %d", d.MinConns))
	}
	if d.ConnectTimeout <= 0 {
		errs = append(errs, errors.New("database.connect_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (h *HealthConfig) validate() error {
	var errs []error

	if h.ProbeTimeout <= 0 {
		errs = append(errs, errors.New("health.probe_timeout must be positive"))
	}
	if h.MaxConcurrency < 1 {
		errs = append(errs, fmt.Errorf("health.max_concurrency must be >= 1, got %d", h.MaxConcurrency))
	}

	return errors.Join(errs...)
}

func (c *Config) validateUpstreams() error {
	var errs []error
	seen := make(map[string]struct{}, len(c.Upstreams))

	for i := range c.Upstreams {
		u := &c.Upstreams[i]
		prefix := fmt.Sprintf("upstreams[%d]", i)

		if u.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name must not be empty", prefix))
		} else if _, dup := seen[u.Name]; dup {
			errs = append(errs, fmt.Errorf("%s.name %q is used by another upstream", prefix, u.Name))
		}
		seen[u.Name] = struct{}{}

		if parsed, err := url.Parse(u.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, fmt.Errorf("%s.base_url must be an absolute URL, got %q", prefix, u.BaseURL))
		}
		if !strings.HasPrefix(u.HealthPath, "/") {
			errs = append(errs, fmt.Errorf("%s.health_path must start with /, got %q", prefix, u.HealthPath))
		}
		if u.Timeout <= 0 {
			errs = append(errs, fmt.Errorf("%s.timeout must be positive", prefix))
		}
		if u.Retry.MaxAttempts < 1 {
			errs = append(errs, fmt.Errorf("%s.retry.max_attempts must be >= 1, got %d", prefix, u.Retry.MaxAttempts))
		}
		if u.Retry.Multiplier <= 0 {
			errs = append(errs, fmt.Errorf("%s.retry.multiplier must be positive, got %f", prefix, u.Retry.Multiplier))
		}
		if u.CircuitBreaker.MaxFailures < 1 {
			errs = append(errs, fmt.Errorf("%s.circuit_breaker.max_failures must be >= 1, got %d",
				prefix, u.CircuitBreaker.MaxFailures))
		}
		if u.RateLimit.RequestsPerSecond < 0 {
			errs = append(errs, fmt.Errorf("%s.rate_limit.requests_per_second must not be negative", prefix))
		}
		if u.RateLimit.RequestsPerSecond > 0 && u.RateLimit.Burst < 1 {
			errs = append(errs, fmt.Errorf("%s.rate_limit.burst must be >= 1 when rate limiting is enabled", prefix))
		}
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp", "prometheus":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp, prometheus; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}

	return errors.Join(errs...)
}

func (p *ProfilingConfig) validate() error {
	if !p.Enabled {
		return nil
	}

	var errs []error
	if p.ServerAddress == "" {
		errs = append(errs, errors.New("profiling.server_address must not be empty when profiling is enabled"))
	}
	if p.AppName == "" {
		errs = append(errs, errors.New("profiling.app_name must not be empty when profiling is enabled"))
	}
	return errors.Join(errs...)
}
