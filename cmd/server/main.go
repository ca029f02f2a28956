// Package main is the entry point for the service. It loads configuration,
// builds the startup lifecycle, serves until SIGINT/SIGTERM, and drains on
// shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen11/sales-master/internal/adapters/clients/upstream"
	adapthttp "github.com/jsamuelsen11/sales-master/internal/adapters/http"
	"github.com/jsamuelsen11/sales-master/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/sales-master/internal/adapters/postgres"
	"github.com/jsamuelsen11/sales-master/internal/app"
	"github.com/jsamuelsen11/sales-master/internal/lifecycle"
	"github.com/jsamuelsen11/sales-master/internal/platform/config"
	"github.com/jsamuelsen11/sales-master/internal/platform/health"
	"github.com/jsamuelsen11/sales-master/internal/platform/logging"
	"github.com/jsamuelsen11/sales-master/internal/platform/profiling"
	"github.com/jsamuelsen11/sales-master/internal/platform/registry"
	"github.com/jsamuelsen11/sales-master/internal/platform/telemetry"
	"github.com/jsamuelsen11/sales-master/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const otelShutdownTimeout = 5 * time.Second

// databaseCheck is the report entry for the database probe.
const databaseCheck = "Database"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	startedAt := time.Now()

	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, prod)")
	}

	// Bootstrap: config, logger, telemetry, profiling.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer shutdownTelemetry(otel, logger)

	stopProfiling, err := profiling.Start(cfg.Profiling, map[string]string{"profile": profile}, logger)
	if err != nil {
		return fmt.Errorf("starting profiler: %w", err)
	}
	defer stopProfiling()

	lc := lifecycle.New(lifecycle.Options[*postgres.DB]{
		Connect: func(ctx context.Context) (*postgres.DB, error) {
			return postgres.Connect(ctx, cfg.Database, logger)
		},
		Bindings: bindings(cfg, startedAt, otel.metrics, logger),
		Routes:   adapthttp.Routes(otel.metricsHandler),
		Transforms: []func(nethttp.Handler) nethttp.Handler{
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.CORS(cfg.Server.CORS, logger),
			middleware.OpenTelemetry(otel.metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.RequestTimeout),
		},
		Server: cfg.Server,
		Logger: logger,
	})

	if err := lc.Initialize(ctx); err != nil {
		return err
	}
	if err := start(ctx, lc, cfg.Server.Port, cfg.Service.Name, logger); err != nil {
		return err
	}

	// Wait for shutdown signal or serve failure.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case <-lc.Done():
		logger.Error("server failed", slog.Any("error", lc.ServeErr()))
	}

	// A second signal abandons the drain.
	stopCtx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := lc.Stop(stopCtx); err != nil {
		return fmt.Errorf("stopping: %w", err)
	}
	return nil
}

// starter is the part of the lifecycle start needs.
type starter interface {
	Start(port int, label string) error
	Stop(ctx context.Context) error
}

// start begins serving. When the listener cannot bind, resources acquired
// during initialization are released before the bind error is returned.
func start(ctx context.Context, lc starter, port int, label string, logger *slog.Logger) error {
	err := lc.Start(port, label)
	if err == nil {
		return nil
	}
	if stopErr := lc.Stop(ctx); stopErr != nil {
		logger.Warn("releasing resources after failed start", slog.Any("error", stopErr))
	}
	return err
}

// bindings declares the capabilities populated after the database connects.
// Order matters: the health service resolves every probe bound before it.
func bindings(cfg *config.Config, startedAt time.Time, metrics *telemetry.Metrics, logger *slog.Logger) []registry.Binding {
	refs := []app.ProbeRef{{Check: databaseCheck, Capability: ports.CapabilityDatabaseProbe}}

	out := []registry.Binding{
		registry.Provide(ports.CapabilityDatabaseProbe, func(reg *registry.Registry) (ports.StatusProbe, error) {
			db, err := registry.Resolve[*postgres.DB](reg, ports.CapabilityDatabase)
			if err != nil {
				return nil, err
			}
			return postgres.NewProbe(db, cfg.Health.ProbeTimeout), nil
		}),
	}

	for i := range cfg.Upstreams {
		up := &cfg.Upstreams[i]
		capability := ports.CapabilityUpstreamProbePrefix + up.Name
		out = append(out, registry.Value[ports.StatusProbe](capability, upstream.New(up, metrics, logger)))
		refs = append(refs, app.ProbeRef{Check: up.Name, Capability: capability})
	}

	out = append(out, registry.Provide(ports.CapabilityHealthService, func(reg *registry.Registry) (ports.HealthService, error) {
		probes, err := app.ResolveProbes(reg, refs)
		if err != nil {
			return nil, err
		}
		aggregator := health.New(startedAt,
			health.WithMaxConcurrency(cfg.Health.MaxConcurrency),
			health.WithRecorder(metrics),
			health.WithLogger(logger),
		)
		return app.NewHealthService(cfg.Service.Name, aggregator, probes, logger), nil
	}))

	return out
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer         *sdktrace.TracerProvider
	meter          *sdkmetric.MeterProvider
	metrics        *telemetry.Metrics
	metricsHandler nethttp.Handler
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func shutdownTelemetry(o *otelProviders, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()

	if err := o.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	var (
		mp      *sdkmetric.MeterProvider
		handler nethttp.Handler
	)
	if cfg.Telemetry.Exporter == telemetry.ExporterPrometheus {
		mp, handler, err = telemetry.InitPrometheus(cfg.Telemetry.ServiceName)
	} else {
		mp, err = telemetry.InitMeter(ctx,
			cfg.Telemetry.ServiceName,
			cfg.Telemetry.Exporter,
			cfg.Telemetry.Endpoint,
		)
	}
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:         tp,
		meter:          mp,
		metrics:        metrics,
		metricsHandler: handler,
	}, nil
}
