// Package reconcile computes the per-listing actions required to keep every
// marketplace consistent with the source-of-truth catalog.
//
// The reconciler is pure: it takes normalized listing records grouped by
// marketplace and returns a deterministic, ordered list of actions. It never
// touches the ledger, the executor, or the filesystem, which keeps the whole
// decision surface testable from literal record slices.
package reconcile
