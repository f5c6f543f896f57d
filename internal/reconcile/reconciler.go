package reconcile

import (
	"sort"

	"crosslist/internal/listing"
)

// Report summarizes what a reconciliation pass looked at and what it skipped.
// Keyless and status-unknown records are normal outcomes, not errors, but the
// counts surface data-quality drift in run summaries.
type Report struct {
	Candidates    int
	KeylessSkips  int
	UnknownSkips  int
	DelistCount   int
	PruneCount    int
	SoldProtected int
}

// Reconcile cross-references every candidate marketplace against the
// source-of-truth platform and returns the delist and prune actions required,
// in a deterministic order.
//
// Decision rules per candidate listing with a resolved key:
//   - no source-of-truth record for the key: delist (the item no longer
//     exists upstream)
//   - source-of-truth state is sold-or-suspended: delist, unless the
//     candidate listing is itself already in a terminal sold state (a sale in
//     progress is never cancelled, overriding the upstream signal)
//   - otherwise: keep
//
// Within each candidate marketplace, listings sharing a key form a duplicate
// group: the newest by last-modified timestamp survives (ties broken by the
// lexicographically smallest subject id) and every other member is pruned.
//
// Keyless records and records with unknown status are invisible to both
// checks. Draft listings are left alone; they are already parked.
func Reconcile(byPlatform map[listing.Platform][]listing.Record, truth listing.Platform) ([]Action, Report) {
	var report Report

	truthStates := truthStateIndex(byPlatform[truth])

	var actions []Action
	for platform, records := range byPlatform {
		if platform == truth {
			continue
		}
		delists, prunes := reconcilePlatform(records, truthStates, &report)
		actions = append(actions, delists...)
		actions = append(actions, prunes...)
	}

	sort.Slice(actions, func(i, j int) bool {
		if actions[i].Platform != actions[j].Platform {
			return actions[i].Platform < actions[j].Platform
		}
		if actions[i].Kind != actions[j].Kind {
			return actions[i].Kind < actions[j].Kind
		}
		return actions[i].Subject < actions[j].Subject
	})
	return actions, report
}

// truthStateIndex builds the canonical key to state view from the
// source-of-truth export. When the same key appears more than once upstream,
// an active record wins over a sold one: the item is still sellable somewhere.
func truthStateIndex(records []listing.Record) map[string]listing.State {
	states := make(map[string]listing.State, len(records))
	for _, record := range records {
		if !record.HasKey() {
			continue
		}
		current, seen := states[record.Key]
		if !seen || current != listing.StateActive {
			states[record.Key] = record.State
		}
	}
	return states
}

func reconcilePlatform(records []listing.Record, truthStates map[string]listing.State, report *Report) (delists, prunes []Action) {
	groups := make(map[string][]listing.Record)

	for _, record := range records {
		report.Candidates++
		if !record.HasKey() {
			report.KeylessSkips++
			continue
		}
		switch record.State {
		case listing.StateUnknown:
			report.UnknownSkips++
			continue
		case listing.StateDraft, listing.StateEndedUnsold:
			continue
		}

		if record.State.Terminal() {
			// The listing sold on this marketplace; never cancel it.
			report.SoldProtected++
			continue
		}

		truthState, exists := truthStates[record.Key]
		switch {
		case !exists:
			delists = append(delists, Action{
				Kind:     KindDelist,
				Platform: record.Platform,
				Subject:  record.SubjectID(),
				Key:      record.Key,
				Reason:   "no source-of-truth record",
			})
			report.DelistCount++
			continue
		case truthState == listing.StateSoldOrSuspended:
			delists = append(delists, Action{
				Kind:     KindDelist,
				Platform: record.Platform,
				Subject:  record.SubjectID(),
				Key:      record.Key,
				Reason:   "sold on source of truth",
			})
			report.DelistCount++
			continue
		}

		groups[record.Key] = append(groups[record.Key], record)
	}

	for key, group := range groups {
		if len(group) < 2 {
			continue
		}
		keep := newestMember(group)
		for _, member := range group {
			if member.SubjectID() == keep.SubjectID() {
				continue
			}
			prunes = append(prunes, Action{
				Kind:     KindPruneDuplicate,
				Platform: member.Platform,
				Subject:  member.SubjectID(),
				Key:      key,
				Reason:   "duplicate of " + keep.SubjectID(),
			})
			report.PruneCount++
		}
	}
	return delists, prunes
}

// newestMember picks the surviving member of a duplicate group: latest
// last-modified timestamp, ties broken by the lexicographically smallest
// subject id so repeated runs over the same input retain the same listing.
func newestMember(group []listing.Record) listing.Record {
	keep := group[0]
	for _, candidate := range group[1:] {
		switch {
		case candidate.UpdatedAt.After(keep.UpdatedAt):
			keep = candidate
		case candidate.UpdatedAt.Equal(keep.UpdatedAt) && candidate.SubjectID() < keep.SubjectID():
			keep = candidate
		}
	}
	return keep
}
