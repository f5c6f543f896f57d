package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"crosslist/internal/config"
	"crosslist/internal/executor"
	"crosslist/internal/ledger"
	"crosslist/internal/listing"
	"crosslist/internal/logging"
	"crosslist/internal/notify"
	"crosslist/internal/reconcile"
)

// Options wires a Runner. Config, Ledger, and Executor are required; the
// remaining fields default to production implementations.
type Options struct {
	Config   *config.Config
	Ledger   ledger.Store
	Executor executor.Executor

	Logger   *slog.Logger
	Notifier notify.Service

	// Sleep paces retry backoff. Tests inject a no-op.
	Sleep executor.Sleeper

	// Now supplies run timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Runner drives one full reconciliation run.
type Runner struct {
	cfg      *config.Config
	store    ledger.Store
	exec     executor.Executor
	logger   *slog.Logger
	notifier notify.Service
	sleep    executor.Sleeper
	now      func() time.Time
}

// New builds a Runner, filling unset optional fields with defaults.
func New(opts Options) *Runner {
	runner := &Runner{
		cfg:      opts.Config,
		store:    opts.Ledger,
		exec:     opts.Executor,
		logger:   opts.Logger,
		notifier: opts.Notifier,
		sleep:    opts.Sleep,
		now:      opts.Now,
	}
	if runner.logger == nil {
		runner.logger = logging.NewNop()
	}
	if runner.notifier == nil {
		runner.notifier = notify.NewService(runner.cfg)
	}
	if runner.sleep == nil {
		runner.sleep = executor.WaitSleeper
	}
	if runner.now == nil {
		runner.now = time.Now
	}
	return runner
}

func (r *Runner) retryPolicy() executor.Policy {
	policy := executor.DefaultPolicy()
	if r.cfg.Retry.Attempts > 0 {
		policy.Attempts = r.cfg.Retry.Attempts
	}
	if r.cfg.Retry.InitialDelaySeconds > 0 {
		policy.InitialDelay = time.Duration(r.cfg.Retry.InitialDelaySeconds) * time.Second
	}
	if r.cfg.Retry.MaxDelaySeconds > 0 {
		policy.MaxDelay = time.Duration(r.cfg.Retry.MaxDelaySeconds) * time.Second
	}
	return policy
}

// Run executes one complete pass: cleanup first, then posting against the
// capacity left after cleanup. A non-nil error means the run aborted; partial
// progress up to that point is already in the ledger.
func (r *Runner) Run(ctx context.Context) (notify.RunStats, error) {
	stats := notify.RunStats{
		RunID:     uuid.NewString(),
		StartedAt: r.now(),
	}
	log := r.logger.With(logging.String("run_id", stats.RunID))
	log.Info("run started", logging.String("source_platform", r.cfg.SourcePlatform))

	exports, err := r.loadExports(log)
	if err != nil {
		return r.fail(ctx, stats, err, "loading exports")
	}
	stats.Breaches = append(stats.Breaches, exports.breaches...)

	cleanup, report := r.cleanupActions(exports, log)
	log.Info("reconciliation computed",
		logging.Int("candidates", report.Candidates),
		logging.Int("delist", report.DelistCount),
		logging.Int("prune", report.PruneCount),
		logging.Int("keyless_skipped", report.KeylessSkips),
		logging.Int("status_unknown_skipped", report.UnknownSkips),
		logging.Int("sold_protected", report.SoldProtected))

	removed, err := r.apply(ctx, cleanup, &stats, log)
	if err != nil {
		return r.fail(ctx, stats, err, "applying cleanup actions")
	}

	posting, budget, ok := r.postingActions(exports, removed[listing.Platform(r.cfg.Posting.Platform)], log)
	if ok {
		log.Info("posting budget allocated",
			logging.Int("active", budget.ActiveCount),
			logging.Int("relist_quota", budget.RelistQuota),
			logging.Int("new_quota", budget.NewQuota))
		if _, err := r.apply(ctx, posting, &stats, log); err != nil {
			return r.fail(ctx, stats, err, "applying posting actions")
		}
	}

	log.Info("run completed",
		logging.Int("delisted", stats.Delisted),
		logging.Int("pruned", stats.Pruned),
		logging.Int("relisted", stats.Relisted),
		logging.Int("created", stats.Created),
		logging.Int("failed", stats.Failed),
		logging.Int("skipped", stats.Skipped))
	if err := r.notifier.RunCompleted(ctx, stats); err != nil {
		log.Warn("run notification failed", logging.Error(err))
	}
	return stats, nil
}

func (r *Runner) fail(ctx context.Context, stats notify.RunStats, err error, label string) (notify.RunStats, error) {
	r.logger.Error("run aborted", logging.String("during", label), logging.Error(err))
	if notifyErr := r.notifier.RunFailed(ctx, err, label); notifyErr != nil {
		r.logger.Warn("failure notification failed", logging.Error(notifyErr))
	}
	return stats, fmt.Errorf("%s: %w", label, err)
}

// apply pushes actions through the ledger gate and the executor. It returns
// the number of successful removals per marketplace so the caller can adjust
// active counts without re-reading exports.
//
// Outcome rules per action:
//   - already ledgered: skipped, never re-sent
//   - success: ledgered, counted
//   - permanent failure: ledgered so the next run does not repeat a doomed
//     attempt, counted as failed
//   - retryable failure after all attempts: counted as failed, not ledgered,
//     so the next run tries again
func (r *Runner) apply(ctx context.Context, actions []reconcile.Action, stats *notify.RunStats, log *slog.Logger) (map[listing.Platform]int, error) {
	removed := make(map[listing.Platform]int)
	policy := r.retryPolicy()

	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if r.store.Done(action.Subject, string(action.Kind)) {
			stats.Skipped++
			log.Debug("action already completed",
				logging.String("kind", string(action.Kind)),
				logging.String("subject", action.Subject))
			continue
		}

		result := executor.WithRetry(ctx, r.exec, action, policy, r.sleep)
		switch {
		case result.Success:
			if err := r.store.MarkDone(action.Subject, string(action.Kind)); err != nil {
				return removed, fmt.Errorf("record completion: %w", err)
			}
			r.count(action, stats, removed)
			log.Info("action applied",
				logging.String("kind", string(action.Kind)),
				logging.String("platform", string(action.Platform)),
				logging.String("subject", action.Subject),
				logging.String("reason", action.Reason))
		case !result.Retryable:
			if err := r.store.MarkDone(action.Subject, string(action.Kind)); err != nil {
				return removed, fmt.Errorf("record permanent failure: %w", err)
			}
			stats.Failed++
			log.Warn("action failed permanently",
				logging.String("kind", string(action.Kind)),
				logging.String("subject", action.Subject),
				logging.String("message", result.Message))
		default:
			stats.Failed++
			log.Warn("action failed, will retry next run",
				logging.String("kind", string(action.Kind)),
				logging.String("subject", action.Subject),
				logging.String("message", result.Message))
		}
	}
	return removed, nil
}

func (r *Runner) count(action reconcile.Action, stats *notify.RunStats, removed map[listing.Platform]int) {
	switch action.Kind {
	case reconcile.KindDelist:
		stats.Delisted++
		removed[action.Platform]++
	case reconcile.KindPruneDuplicate:
		stats.Pruned++
		removed[action.Platform]++
	case reconcile.KindRelist:
		stats.Relisted++
	case reconcile.KindCreateNew:
		stats.Created++
	}
}
