package schedule

// Budget is the per-run posting state, derived at the start of each
// scheduling pass from the live active-listing count. It is consumed within
// one run and never persisted.
type Budget struct {
	MaxActiveItems int
	ActiveCount    int
	RelistQuota    int
	NewQuota       int
}

// Available returns the remaining listing capacity on the marketplace.
func (b Budget) Available() int {
	available := b.MaxActiveItems - b.ActiveCount
	if available < 0 {
		return 0
	}
	return available
}

// Allocate splits today's capacity between relisting and new listings.
//
// When the full daily targets fit, both are granted. Under scarcity the
// split favors relisting: relisting recovers engagement history already paid
// for, so it gets up to half the remaining capacity before new listings
// claim the rest. This is a policy choice, not a derived optimum.
func Allocate(activeCount, maxActive, relistTarget, newTarget int) Budget {
	budget := Budget{MaxActiveItems: maxActive, ActiveCount: activeCount}

	available := budget.Available()
	if available == 0 {
		return budget
	}
	if available >= relistTarget+newTarget {
		budget.RelistQuota = relistTarget
		budget.NewQuota = newTarget
		return budget
	}

	budget.RelistQuota = min(relistTarget, available/2)
	budget.NewQuota = min(newTarget, available-budget.RelistQuota)
	return budget
}
