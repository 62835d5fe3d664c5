package policy

import (
	"context"
	"net/http"
)

// Executor is a function that executes an HTTP request.
// It represents the next step in the policy chain (either another policy or the transport).
type Executor func(ctx context.Context, req *http.Request) (*http.Response, error)

// Policy observes or decorates the single transport invocation of a call.
// Policies are chained together using the decorator pattern, with each policy
// wrapping the next one in the chain.
//
// A policy must call next exactly once, or return an error without calling it.
// It may:
// - Modify the request before it is sent (headers, context values)
// - Inspect the response
// - Record logs, metrics and traces
type Policy interface {
	// Execute runs the policy logic around the next executor in the chain.
	Execute(ctx context.Context, req *http.Request, next Executor) (*http.Response, error)
}

// Func adapts a function to the Policy interface.
type Func func(ctx context.Context, req *http.Request, next Executor) (*http.Response, error)

// Execute calls f(ctx, req, next).
func (f Func) Execute(ctx context.Context, req *http.Request, next Executor) (*http.Response, error) {
	return f(ctx, req, next)
}

// Chain creates an executor that chains multiple policies together.
// Policies are applied in order: the first policy wraps the second, which wraps the third, etc.
// The final executor (typically a Transport.Do) is called after all policies have been applied.
//
// Example:
//
//	executor := Chain(
//	    []Policy{requestIDPolicy, loggingPolicy, metricsPolicy},
//	    transport.Do,
//	)
//	resp, err := executor(ctx, req)
func Chain(policies []Policy, final Executor) Executor {
	executor := final

	for i := len(policies) - 1; i >= 0; i-- {
		policy := policies[i]
		next := executor

		executor = func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return policy.Execute(ctx, req, next)
		}
	}

	return executor
}

type routeKey struct{}

// ContextWithRoute stores the path template of the call in ctx. Policies use
// it as a low-cardinality name for the request.
func ContextWithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// RouteFromContext returns the path template stored in ctx, or "" if none.
func RouteFromContext(ctx context.Context) string {
	route, _ := ctx.Value(routeKey{}).(string)
	return route
}
