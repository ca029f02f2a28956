// Package registry provides the process-wide service registry that maps
// capability identifiers to concrete instances. It is populated once during
// startup, sealed, and consulted read-only afterwards.
//
// The registry is backed by a samber/do v2 root scope, so registered
// instances that implement one of the do Shutdowner interfaces are released
// by [Registry.Shutdown].
//
// Registration binds the exact type parameter used at the call site.
// Resolve with the same type:
//
//	registry.Register[ports.StatusProbe](reg, ports.CapabilityDatabaseProbe, probe)
//	probe, err := registry.Resolve[ports.StatusProbe](reg, ports.CapabilityDatabaseProbe)
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"
)

// Registry binds capability identifiers to instances. At most one binding
// exists per identifier.
//
// Registration is not safe for concurrent use: every binding is written from
// the startup goroutine before Seal. Resolution after Seal is read-only and
// safe from any goroutine.
type Registry struct {
	injector *do.RootScope
	bound    map[string]struct{}
	order    []string
	sealed   bool
	logger   *slog.Logger
}

// New creates an empty, unsealed registry. Container diagnostics are written
// to logger at debug level.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "registry"))
		},
	})

	return &Registry{
		injector: injector,
		bound:    make(map[string]struct{}),
		logger:   logger,
	}
}

// Register binds instance to capability. It fails with ErrDuplicate when the
// capability is already bound (the existing binding is left untouched) and
// with ErrSealed once the registry has been sealed. The binding is visible to
// Resolve as soon as Register returns.
func Register[T any](r *Registry, capability string, instance T) error {
	if r.sealed {
		return &RegistrationError{Capability: capability, Err: ErrSealed}
	}
	if _, exists := r.bound[capability]; exists {
		return &RegistrationError{Capability: capability, Err: ErrDuplicate}
	}

	do.ProvideNamedValue(r.injector, capability, instance)
	r.bound[capability] = struct{}{}
	r.order = append(r.order, capability)

	r.logger.Debug("capability registered",
		slog.String("capability", capability),
		slog.String("type", do.NameOf[T]()),
	)
	return nil
}

// Resolve returns the instance previously bound to capability. No
// construction happens here. It fails with ErrNotFound when nothing is bound
// and with ErrTypeMismatch when the binding was registered under another type.
func Resolve[T any](r *Registry, capability string) (T, error) {
	var zero T

	if _, exists := r.bound[capability]; !exists {
		return zero, &RegistrationError{Capability: capability, Err: ErrNotFound}
	}

	instance, err := do.InvokeNamed[T](r.injector, capability)
	if err != nil {
		return zero, &RegistrationError{
			Capability: capability,
			Err:        fmt.Errorf("%w: %v", ErrTypeMismatch, err),
		}
	}
	return instance, nil
}

// Capabilities returns the bound identifiers in registration order.
func (r *Registry) Capabilities() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Seal closes the registry to further registration.
func (r *Registry) Seal() {
	r.sealed = true
}

// Shutdown releases every bound instance that implements one of the do
// Shutdowner interfaces. Instances without a shutdown hook are ignored.
func (r *Registry) Shutdown(ctx context.Context) error {
	report := r.injector.ShutdownWithContext(ctx)
	if report != nil && !report.Succeed {
		return fmt.Errorf("shutting down capabilities: %w", report)
	}
	return nil
}
