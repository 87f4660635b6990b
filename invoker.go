// Package servicekit is the invocation boundary of the service schema
// registry: it ties the definition table, the argument validator and the
// per-service dispatchers together. Callers hand it a service identifier,
// a target entity and raw arguments; handlers receive arguments that have
// already been validated and normalized.
package servicekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hearthkit/servicekit/capability"
	"github.com/hearthkit/servicekit/registry"
	"github.com/hearthkit/servicekit/validation"
)

// Sentinel errors for dispatch failures.
var (
	// ErrUnknownService is returned when the registry has no definition
	// for the requested identifier.
	ErrUnknownService = errors.New("unknown service")

	// ErrNoHandler is returned when a definition exists but no dispatcher
	// was registered for it.
	ErrNoHandler = errors.New("no handler registered for service")
)

// Call is one validated service invocation.
type Call struct {
	// Service is the invoked service identifier.
	Service string

	// Entity is the resolved target of the call.
	Entity capability.Entity

	// Args is the normalized argument map: defaults applied, values
	// coerced to their selector kinds.
	Args map[string]any

	// RawArgs is the caller-supplied mapping, untouched.
	RawArgs map[string]any
}

// Handler executes one service call.
type Handler func(ctx context.Context, call *Call) (any, error)

// Invoker validates and dispatches service calls.
type Invoker struct {
	registry  *registry.Registry
	validator validation.ArgumentValidator
	handlers  map[string]Handler
	chain     []Middleware
	logger    *slog.Logger
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithValidator replaces the default argument validator.
func WithValidator(v validation.ArgumentValidator) InvokerOption {
	return func(inv *Invoker) {
		inv.validator = v
	}
}

// WithMiddleware appends middleware to the dispatch chain. Middleware
// executes in FIFO order (first registered wraps first, onion model).
func WithMiddleware(mw ...Middleware) InvokerOption {
	return func(inv *Invoker) {
		inv.chain = append(inv.chain, mw...)
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) InvokerOption {
	return func(inv *Invoker) {
		inv.logger = logger
	}
}

// NewInvoker creates an Invoker over a service registry.
func NewInvoker(reg *registry.Registry, opts ...InvokerOption) *Invoker {
	inv := &Invoker{
		registry:  reg,
		validator: validation.New(),
		handlers:  make(map[string]Handler),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Handle registers the dispatcher for a service identifier. Registering a
// handler twice is an error.
func (inv *Invoker) Handle(service string, handler Handler) error {
	if _, exists := inv.handlers[service]; exists {
		return fmt.Errorf("handler already registered for service %q", service)
	}
	inv.handlers[service] = handler
	return nil
}

// Invoke validates args for the named service and dispatches the call.
// Validation failures reject only this invocation; the shared tables are
// never affected.
func (inv *Invoker) Invoke(ctx context.Context, service string, entity capability.Entity, args map[string]any) (any, error) {
	def, ok := inv.registry.Get(service)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, service)
	}
	handler, ok := inv.handlers[service]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoHandler, service)
	}

	normalized, err := inv.validator.Validate(def, entity, args)
	if err != nil {
		inv.logger.Debug("service call rejected",
			"service", service,
			"entity", entity.ID,
			"error", err,
		)
		return nil, err
	}

	wrapped := handler
	for i := len(inv.chain) - 1; i >= 0; i-- {
		wrapped = inv.chain[i](wrapped)
	}
	return wrapped(ctx, &Call{
		Service: service,
		Entity:  entity,
		Args:    normalized,
		RawArgs: args,
	})
}
