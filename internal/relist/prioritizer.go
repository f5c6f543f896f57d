package relist

import (
	"sort"

	"crosslist/internal/listing"
	"crosslist/internal/reconcile"
)

// Ledger is the read side of the idempotency log the prioritizer consults.
type Ledger interface {
	Done(subject, kind string) bool
}

// Prioritize orders ended listings most-eligible first.
//
// Exclusions before ranking:
//   - listings whose (subject, relist) pair is already in the ledger
//   - listings whose title exactly matches a currently active title on the
//     same marketplace (the item is effectively already live)
//
// Remaining listings sort by bids, then watches, then views, all descending.
// The sort is stable, so ties keep their input order and the selection is
// reproducible. Callers truncate to their relist quota.
func Prioritize(ended []listing.Record, activeTitles map[string]struct{}, ledger Ledger) []listing.Record {
	eligible := make([]listing.Record, 0, len(ended))
	for _, record := range ended {
		if ledger != nil && ledger.Done(record.SubjectID(), string(reconcile.KindRelist)) {
			continue
		}
		if _, live := activeTitles[record.Title]; live {
			continue
		}
		eligible = append(eligible, record)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		a, b := eligible[i].Engagement, eligible[j].Engagement
		if a.Bids != b.Bids {
			return a.Bids > b.Bids
		}
		if a.Watches != b.Watches {
			return a.Watches > b.Watches
		}
		return a.Views > b.Views
	})
	return eligible
}

// ActiveTitles collects the titles of currently active listings for the
// duplicate-title exclusion.
func ActiveTitles(records []listing.Record) map[string]struct{} {
	titles := make(map[string]struct{}, len(records))
	for _, record := range records {
		if record.State == listing.StateActive && record.Title != "" {
			titles[record.Title] = struct{}{}
		}
	}
	return titles
}
