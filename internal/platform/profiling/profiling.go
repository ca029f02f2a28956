// Package profiling starts continuous profiling with Pyroscope when enabled
// in configuration.
package profiling

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/grafana/pyroscope-go"

	"github.com/jsamuelsen11/sales-master/internal/platform/config"
)

const (
	mutexProfileFraction = 5
	blockProfileRate     = 5
)

// StopFunc stops the profiler and flushes pending uploads.
type StopFunc func()

// Start begins profiling according to cfg. When profiling is disabled it
// returns a no-op StopFunc. Tags are attached to every uploaded profile.
func Start(cfg config.ProfilingConfig, tags map[string]string, logger *slog.Logger) (StopFunc, error) {
	if !cfg.Enabled {
		logger.Debug("profiling disabled")
		return func() {}, nil
	}
	if cfg.ServerAddress == "" {
		return func() {}, errors.New("profiling server address must not be empty")
	}

	runtime.SetMutexProfileFraction(mutexProfileFraction)
	runtime.SetBlockProfileRate(blockProfileRate)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.AppName,
		ServerAddress:   cfg.ServerAddress,
		Tags:            tags,
		Logger:          slogAdapter{logger: logger},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		return func() {}, fmt.Errorf("starting pyroscope: %w", err)
	}

	logger.Info("profiling started",
		slog.String("server_address", cfg.ServerAddress),
		slog.String("app_name", cfg.AppName),
	)

	return func() {
		if err := profiler.Stop(); err != nil {
			logger.Warn("profiler stop failed", slog.Any("error", err))
			return
		}
		logger.Info("profiling stopped")
	}, nil
}

// slogAdapter routes pyroscope's printf-style logging into slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Infof(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "pyroscope"))
}

func (a slogAdapter) Debugf(format string, args ...any) {
	a.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "pyroscope"))
}

func (a slogAdapter) Errorf(format string, args ...any) {
	a.logger.Error(fmt.Sprintf(format, args...), slog.String("component", "pyroscope"))
}
