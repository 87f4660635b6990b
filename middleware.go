package servicekit

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Middleware wraps a Handler to add cross-cutting behavior.
//
// Example usage:
//
//	timing := func(next Handler) Handler {
//	    return func(ctx context.Context, call *Call) (any, error) {
//	        start := time.Now()
//	        defer func() { log.Printf("%s took %s", call.Service, time.Since(start)) }()
//	        return next(ctx, call)
//	    }
//	}
type Middleware func(next Handler) Handler

// LoggingMiddleware returns a middleware that logs every dispatch with its
// outcome and duration.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (any, error) {
			start := time.Now()
			result, err := next(ctx, call)
			if err != nil {
				logger.ErrorContext(ctx, "service call failed",
					"service", call.Service,
					"entity", call.Entity.ID,
					"duration", time.Since(start),
					"error", err,
				)
				return result, err
			}
			logger.InfoContext(ctx, "service call completed",
				"service", call.Service,
				"entity", call.Entity.ID,
				"duration", time.Since(start),
			)
			return result, nil
		}
	}
}

// PanicRecoveryMiddleware returns a middleware that converts handler panics
// into errors instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (result any, err error) {
			defer func() {
				if r := recover(); r != nil {
					result = nil
					err = fmt.Errorf("service %q panicked: %v", call.Service, r)
				}
			}()
			return next(ctx, call)
		}
	}
}
