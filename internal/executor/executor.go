package executor

import (
	"context"

	"crosslist/internal/reconcile"
)

// Result reports one execution attempt. Retryable failures stay out of the
// ledger and become eligible again next run; permanent failures are ledgered
// anyway so a missing resource cannot cause an infinite retry loop.
type Result struct {
	Success   bool
	Retryable bool
	Message   string
}

// Executor applies a single action against a marketplace. Implementations
// enforce their own timeouts and report failure instead of hanging; the
// caller assumes an attempt takes unbounded but finite wall-clock time.
type Executor interface {
	Execute(ctx context.Context, action reconcile.Action) Result
}

// Func adapts a function to the Executor interface.
type Func func(ctx context.Context, action reconcile.Action) Result

func (f Func) Execute(ctx context.Context, action reconcile.Action) Result {
	return f(ctx, action)
}

// Noop succeeds without side effects. It backs dry runs and tests.
func Noop() Executor {
	return Func(func(context.Context, reconcile.Action) Result {
		return Result{Success: true}
	})
}
