// Package runner orchestrates one reconciliation run end to end.
//
// A run is strictly sequential per marketplace: exports are read and
// normalized, cleanup actions (delist, prune) are computed and applied
// through the ledger gate, and only then is the posting budget allocated
// from the post-cleanup active count, so relist and create-new work never
// sees a stale capacity figure. The runner owns no marketplace mechanics; it
// hands every action to the executor boundary and records completions in the
// ledger before counting them done.
package runner
