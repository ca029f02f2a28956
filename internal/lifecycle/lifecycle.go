// Package lifecycle orchestrates service startup and shutdown.
//
// Initialize runs four steps strictly in order and stops at the first
// failure:
//
//  1. connect to the external dependency (single attempt)
//  2. populate the registry from the declared bindings, then seal it
//  3. build the route table with the request transforms mounted
//  4. wrap everything in the failure trap
//
// Start binds the listener and serves in the background. Stop drains
// in-flight requests and releases resources.
//
//	lc := lifecycle.New(lifecycle.Options[*postgres.DB]{...})
//	if err := lc.Initialize(ctx); err != nil {
//		os.Exit(1)
//	}
//	if err := lc.Start(cfg.Server.Port, "Sales Master"); err != nil { ... }
//	defer lc.Stop(ctx)
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	adapthttp "github.com/jsamuelsen11/sales-master/internal/adapters/http"
	"github.com/jsamuelsen11/sales-master/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/sales-master/internal/platform/config"
	"github.com/jsamuelsen11/sales-master/internal/platform/registry"
	"github.com/jsamuelsen11/sales-master/internal/ports"
)

// Dependency is the external stateful dependency owned by the Lifecycle.
type Dependency interface {
	Close()
}

// RouteBuilder returns the route table with transforms mounted inside it.
// It may resolve anything bound in the registry.
type RouteBuilder func(reg *registry.Registry, transforms ...func(http.Handler) http.Handler) (http.Handler, error)

// Options configures a Lifecycle.
type Options[D Dependency] struct {
	// Connect opens the dependency. It is called exactly once.
	Connect func(ctx context.Context) (D, error)
	// Bindings are applied in order after the dependency is registered as
	// ports.CapabilityDatabase.
	Bindings []registry.Binding
	// Routes builds the route table.
	Routes RouteBuilder
	// Transforms are cross-cutting request middleware, outermost first.
	Transforms []func(http.Handler) http.Handler
	// Server supplies the listener timeouts. Its Port is ignored; Start
	// takes the port.
	Server config.ServerConfig
	Logger *slog.Logger
}

// Lifecycle owns the dependency handle, the registry and the listener.
type Lifecycle[D Dependency] struct {
	opts   Options[D]
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	dep      D
	hasDep   bool
	registry *registry.Registry
	handler  http.Handler
	server   *adapthttp.Server

	serveDone   chan struct{}
	serveResult error
}

// New creates a Lifecycle in StateCreated.
func New[D Dependency](opts Options[D]) *Lifecycle[D] {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Lifecycle[D]{
		opts:   opts,
		logger: logger,
		state:  StateCreated,
	}
}

// State returns the current state.
func (l *Lifecycle[D]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Registry returns the registry populated by Initialize, or nil before it.
func (l *Lifecycle[D]) Registry() *registry.Registry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry
}

// Handler returns the fully wired request handler once Ready.
func (l *Lifecycle[D]) Handler() http.Handler {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handler
}

// Initialize runs the startup steps. Any failure moves the Lifecycle to
// StateFailed and is returned as a *FatalError; the remaining steps are not
// run. On success the state is StateReady.
func (l *Lifecycle[D]) Initialize(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateCreated {
		return stateError("initialize", l.state)
	}
	l.state = StateInitializing

	if err := l.initialize(ctx); err != nil {
		l.state = StateFailed
		l.logger.Error("startup failed", slog.Any("error", err))
		return err
	}

	l.state = StateReady
	l.logger.Info("service ready", slog.Int("capabilities", len(l.registry.Capabilities())))
	return nil
}

func (l *Lifecycle[D]) initialize(ctx context.Context) error {
	if l.opts.Connect == nil {
		return &FatalError{Step: StepConnect, Err: errors.New("no connect step configured")}
	}
	dep, err := l.opts.Connect(ctx)
	if err != nil {
		return &FatalError{Step: StepConnect, Err: err}
	}
	l.dep, l.hasDep = dep, true

	l.registry = registry.New(l.logger)
	if err := registry.Register(l.registry, ports.CapabilityDatabase, dep); err != nil {
		return l.failAfterConnect(StepRegister, err)
	}
	for _, b := range l.opts.Bindings {
		if err := l.registry.Apply(b); err != nil {
			return l.failAfterConnect(StepRegister, err)
		}
	}
	l.registry.Seal()

	if l.opts.Routes == nil {
		return l.failAfterConnect(StepRoutes, errors.New("no route builder configured"))
	}
	routes, err := l.opts.Routes(l.registry, l.opts.Transforms...)
	if err != nil {
		return l.failAfterConnect(StepRoutes, err)
	}

	// The trap goes on last so it wraps every transform and handler.
	l.handler = middleware.Recovery(l.logger)(routes)
	return nil
}

// failAfterConnect releases what the earlier steps acquired. Failed is
// terminal, so nothing else will.
func (l *Lifecycle[D]) failAfterConnect(step string, err error) error {
	if l.registry != nil {
		if shutdownErr := l.registry.Shutdown(context.Background()); shutdownErr != nil {
			l.logger.Warn("releasing capabilities after failed startup", slog.Any("error", shutdownErr))
		}
	}
	l.dep.Close()
	l.hasDep = false
	return &FatalError{Step: step, Err: err}
}

// Start binds 0.0.0.0:port and serves in the background. It panics when
// called outside StateReady or more than once. A bind failure is returned.
func (l *Lifecycle[D]) Start(port int, label string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateReady {
		panic(fmt.Sprintf("lifecycle: Start called in state %s", l.state))
	}
	if l.server != nil {
		panic("lifecycle: Start called twice")
	}

	cfg := l.opts.Server
	cfg.Port = port
	server := adapthttp.NewServer(cfg, l.handler, l.logger)
	if err := server.Listen(); err != nil {
		return fmt.Errorf("starting %s: %w", label, err)
	}

	done := make(chan struct{})
	l.server = server
	l.serveDone = done
	go func() {
		l.serveResult = server.Serve()
		close(done)
	}()

	l.logger.Info(fmt.Sprintf("%s listening on port %d!", label, server.Port()),
		slog.String("label", label),
		slog.Int("port", server.Port()),
	)
	return nil
}

// Addr returns the bound listener address, or "" before Start.
func (l *Lifecycle[D]) Addr() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.server == nil {
		return ""
	}
	return l.server.Addr()
}

// Done is closed when the serve loop exits, either because serving failed
// or because Stop drained it. It is nil before Start.
func (l *Lifecycle[D]) Done() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.serveDone
}

// ServeErr returns the serve loop result once Done is closed. It is nil
// after a graceful stop.
func (l *Lifecycle[D]) ServeErr() error {
	l.mu.Lock()
	done := l.serveDone
	l.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return l.serveResult
	default:
		return nil
	}
}

// Stop stops accepting connections and waits for in-flight requests to
// finish, then releases registered capabilities and closes the dependency.
// The drain has no deadline of its own: ctx bounds it. Stop is valid only
// from StateReady.
func (l *Lifecycle[D]) Stop(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateReady {
		state := l.state
		l.mu.Unlock()
		return stateError("stop", state)
	}
	l.state = StateStopping
	server, done := l.server, l.serveDone
	l.mu.Unlock()

	var errs []error
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("draining connections: %w", err))
		}
		<-done
		if l.serveResult != nil {
			errs = append(errs, l.serveResult)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.registry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if l.hasDep {
		l.dep.Close()
		l.hasDep = false
	}

	l.state = StateStopped
	l.logger.Info("server stopped gracefully")
	return errors.Join(errs...)
}
