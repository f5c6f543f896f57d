package executor

import (
	"context"
	"time"

	"crosslist/internal/reconcile"
)

// Policy describes the retry behavior applied around executor attempts.
// The delay doubles after each failure up to MaxDelay.
type Policy struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultPolicy matches the cadence the actuator tolerates without tripping
// marketplace abuse detection.
func DefaultPolicy() Policy {
	return Policy{
		Attempts:     3,
		InitialDelay: 5 * time.Second,
		MaxDelay:     60 * time.Second,
	}
}

// Delay returns the backoff before the given retry (0-based failure count).
func (p Policy) Delay(failures int) time.Duration {
	delay := p.InitialDelay
	for i := 0; i < failures; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	return delay
}

// Sleeper waits between attempts. Injected so tests (and the planner) never
// block on wall-clock time.
type Sleeper func(ctx context.Context, d time.Duration) error

// WaitSleeper sleeps for real, honoring context cancellation.
func WaitSleeper(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithRetry executes the action, retrying retryable failures per the policy.
// The final Result is returned unchanged: a success, a permanent failure, or
// the last retryable failure once attempts are exhausted.
func WithRetry(ctx context.Context, exec Executor, action reconcile.Action, policy Policy, sleep Sleeper) Result {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	if sleep == nil {
		sleep = WaitSleeper
	}

	var result Result
	for attempt := 0; attempt < policy.Attempts; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, policy.Delay(attempt-1)); err != nil {
				result.Message = err.Error()
				return result
			}
		}
		result = exec.Execute(ctx, action)
		if result.Success || !result.Retryable {
			return result
		}
	}
	return result
}
