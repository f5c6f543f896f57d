package schedule

import "testing"

func TestAllocateFullFit(t *testing.T) {
	budget := Allocate(80, 100, 4, 10)
	if budget.RelistQuota != 4 || budget.NewQuota != 10 {
		t.Fatalf("budget = %+v", budget)
	}
}

func TestAllocateAtCapacity(t *testing.T) {
	budget := Allocate(100, 100, 4, 10)
	if budget.RelistQuota != 0 || budget.NewQuota != 0 {
		t.Fatalf("budget = %+v, want zero quotas", budget)
	}
}

func TestAllocateOverCapacity(t *testing.T) {
	budget := Allocate(120, 100, 4, 10)
	if budget.Available() != 0 || budget.RelistQuota != 0 || budget.NewQuota != 0 {
		t.Fatalf("budget = %+v", budget)
	}
}

func TestAllocateScarcityFavorsRelist(t *testing.T) {
	// 6 slots left against targets of 4 + 10: relist gets min(4, 3), the
	// rest goes to new listings.
	budget := Allocate(94, 100, 4, 10)
	if budget.RelistQuota != 3 || budget.NewQuota != 3 {
		t.Fatalf("budget = %+v", budget)
	}
	if budget.RelistQuota+budget.NewQuota > budget.Available() {
		t.Fatalf("allocation exceeds capacity: %+v", budget)
	}
}

func TestAllocateNeverExceedsCapacity(t *testing.T) {
	for active := 0; active <= 110; active++ {
		budget := Allocate(active, 100, 4, 10)
		if budget.RelistQuota+budget.NewQuota > budget.Available() {
			t.Fatalf("active=%d: allocation %d+%d exceeds available %d",
				active, budget.RelistQuota, budget.NewQuota, budget.Available())
		}
		if budget.RelistQuota > 4 || budget.NewQuota > 10 {
			t.Fatalf("active=%d: quota exceeds daily target: %+v", active, budget)
		}
	}
}
