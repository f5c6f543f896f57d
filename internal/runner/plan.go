package runner

import (
	"log/slog"
	"sort"

	"crosslist/internal/listing"
	"crosslist/internal/logging"
	"crosslist/internal/reconcile"
	"crosslist/internal/relist"
	"crosslist/internal/schedule"
)

// Plan is the full set of actions a run would take, computed without touching
// any marketplace or the ledger. Actions already in the ledger are excluded.
type Plan struct {
	Actions  []reconcile.Action
	Report   reconcile.Report
	Budget   schedule.Budget
	Breaches []string
}

// Plan computes a dry run. Cleanup actions are assumed to succeed when
// projecting the posting budget, which is the best case; a live run can only
// post less.
func (r *Runner) Plan() (*Plan, error) {
	exports, err := r.loadExports(r.logger)
	if err != nil {
		return nil, err
	}

	cleanup, report := r.cleanupActions(exports, r.logger)

	plan := &Plan{Report: report, Breaches: exports.breaches}
	removedOnPosting := 0
	for _, action := range cleanup {
		if r.store.Done(action.Subject, string(action.Kind)) {
			continue
		}
		plan.Actions = append(plan.Actions, action)
		if action.Platform == listing.Platform(r.cfg.Posting.Platform) {
			removedOnPosting++
		}
	}

	posting, budget, ok := r.postingActions(exports, removedOnPosting, r.logger)
	if ok {
		plan.Budget = budget
		plan.Actions = append(plan.Actions, posting...)
	}
	return plan, nil
}

// cleanupActions cross-references candidate marketplaces against the source
// of truth. Without a readable source-of-truth export there is nothing to
// compare against, so delisting and pruning are skipped for the whole run.
func (r *Runner) cleanupActions(exports *exportSet, log *slog.Logger) ([]reconcile.Action, reconcile.Report) {
	if !exports.has(r.cfg.SourcePlatform) {
		log.Warn("source-of-truth export unavailable, skipping delist and prune",
			logging.String("platform", r.cfg.SourcePlatform))
		return nil, reconcile.Report{}
	}
	return reconcile.Reconcile(exports.byPlatform, listing.Platform(r.cfg.SourcePlatform))
}

// postingActions allocates today's budget from the post-cleanup active count
// and fills it: relists first, ranked by engagement, then new listings for
// source-of-truth products absent from the posting marketplace, oldest first.
// The third return value is false when no posting marketplace is configured
// or its export was unreadable.
func (r *Runner) postingActions(exports *exportSet, removedActive int, log *slog.Logger) ([]reconcile.Action, schedule.Budget, bool) {
	name := r.cfg.Posting.Platform
	if name == "" {
		return nil, schedule.Budget{}, false
	}
	if !exports.has(name) {
		log.Warn("posting export unavailable, skipping relist and create",
			logging.String("platform", name))
		return nil, schedule.Budget{}, false
	}

	platform := listing.Platform(name)
	records := exports.byPlatform[platform]

	activeCount := 0
	for _, record := range records {
		if record.State == listing.StateActive {
			activeCount++
		}
	}
	activeCount -= removedActive
	if activeCount < 0 {
		activeCount = 0
	}

	budget := schedule.Allocate(activeCount, r.cfg.Posting.MaxActiveItems, r.cfg.Posting.DailyRelist, r.cfg.Posting.DailyNew)

	truthByKey := r.truthIndex(exports)

	var actions []reconcile.Action
	actions = append(actions, r.relistActions(records, platform, budget.RelistQuota, truthByKey)...)
	actions = append(actions, r.createActions(records, platform, budget.NewQuota, truthByKey)...)
	return actions, budget, true
}

// truthIndex maps product keys to their source-of-truth records for payload
// snapshots. Active records win when a key appears twice.
func (r *Runner) truthIndex(exports *exportSet) map[string]listing.Record {
	index := make(map[string]listing.Record)
	for _, record := range exports.byPlatform[listing.Platform(r.cfg.SourcePlatform)] {
		if !record.HasKey() {
			continue
		}
		current, seen := index[record.Key]
		if !seen || current.State != listing.StateActive {
			index[record.Key] = record
		}
	}
	return index
}

func (r *Runner) relistActions(records []listing.Record, platform listing.Platform, quota int, truthByKey map[string]listing.Record) []reconcile.Action {
	if quota <= 0 {
		return nil
	}

	var ended []listing.Record
	for _, record := range records {
		if record.State == listing.StateEndedUnsold {
			ended = append(ended, record)
		}
	}
	ranked := relist.Prioritize(ended, relist.ActiveTitles(records), r.store)
	if len(ranked) > quota {
		ranked = ranked[:quota]
	}

	actions := make([]reconcile.Action, 0, len(ranked))
	for _, record := range ranked {
		payload := reconcile.SnapshotPayload(record)
		if truth, ok := truthByKey[record.Key]; ok {
			// The source of truth carries the freshest price and copy.
			payload = reconcile.SnapshotPayload(truth)
		}
		actions = append(actions, reconcile.Action{
			Kind:     reconcile.KindRelist,
			Platform: platform,
			Subject:  record.SubjectID(),
			Key:      record.Key,
			Reason:   "ended without sale",
			Payload:  payload,
		})
	}
	return actions
}

// createActions picks source-of-truth products with no listing of any state
// on the posting marketplace. Oldest first: products that have waited longest
// for exposure go up before recent arrivals. The ledger is keyed by product
// key here, since the listing does not exist yet.
func (r *Runner) createActions(records []listing.Record, platform listing.Platform, quota int, truthByKey map[string]listing.Record) []reconcile.Action {
	if quota <= 0 {
		return nil
	}

	listed := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.HasKey() {
			listed[record.Key] = struct{}{}
		}
	}

	var candidates []listing.Record
	for key, record := range truthByKey {
		if record.State != listing.StateActive {
			continue
		}
		if _, ok := listed[key]; ok {
			continue
		}
		if r.store.Done(key, string(reconcile.KindCreateNew)) {
			continue
		}
		candidates = append(candidates, record)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].UpdatedAt.Equal(candidates[j].UpdatedAt) {
			return candidates[i].UpdatedAt.Before(candidates[j].UpdatedAt)
		}
		return candidates[i].Key < candidates[j].Key
	})
	if len(candidates) > quota {
		candidates = candidates[:quota]
	}

	actions := make([]reconcile.Action, 0, len(candidates))
	for _, record := range candidates {
		actions = append(actions, reconcile.Action{
			Kind:     reconcile.KindCreateNew,
			Platform: platform,
			Subject:  record.Key,
			Key:      record.Key,
			Reason:   "not listed on posting marketplace",
			Payload:  reconcile.SnapshotPayload(record),
		})
	}
	return actions
}
