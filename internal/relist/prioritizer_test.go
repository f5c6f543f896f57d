package relist

import (
	"testing"

	"crosslist/internal/ledger"
	"crosslist/internal/listing"
)

func ended(id, title string, bids, watches, views int) listing.Record {
	return listing.Record{
		Platform:  "yahoo",
		ListingID: id,
		Title:     title,
		State:     listing.StateEndedUnsold,
		Engagement: listing.Engagement{
			Bids:    bids,
			Watches: watches,
			Views:   views,
		},
	}
}

func TestPrioritizeRanksByEngagement(t *testing.T) {
	records := []listing.Record{
		ended("y1", "1001 jacket", 0, 5, 50),
		ended("y2", "1002 scarf", 2, 1, 10),
		ended("y3", "1003 boots", 0, 5, 100),
	}

	ranked := Prioritize(records, nil, ledger.NewMemory())
	if len(ranked) != 3 {
		t.Fatalf("ranked = %d records", len(ranked))
	}
	// Bids dominate, then watches, then views.
	want := []string{"y2", "y3", "y1"}
	for i, id := range want {
		if ranked[i].ListingID != id {
			t.Fatalf("rank %d = %s, want %s (full order %+v)", i, ranked[i].ListingID, id, ranked)
		}
	}
}

func TestPrioritizeStableOnTies(t *testing.T) {
	records := []listing.Record{
		ended("y1", "1001 jacket", 0, 0, 0),
		ended("y2", "1002 scarf", 0, 0, 0),
	}
	ranked := Prioritize(records, nil, ledger.NewMemory())
	if ranked[0].ListingID != "y1" || ranked[1].ListingID != "y2" {
		t.Fatalf("tie order changed: %+v", ranked)
	}
}

func TestPrioritizeExcludesLedgeredAndLiveTitles(t *testing.T) {
	store := ledger.NewMemory()
	if err := store.MarkDone("y2", "relist"); err != nil {
		t.Fatal(err)
	}

	records := []listing.Record{
		ended("y1", "1001 jacket", 1, 0, 0),
		ended("y2", "1002 scarf", 5, 0, 0),
		ended("y3", "1003 boots", 3, 0, 0),
	}
	active := map[string]struct{}{"1003 boots": {}}

	ranked := Prioritize(records, active, store)
	if len(ranked) != 1 || ranked[0].ListingID != "y1" {
		t.Fatalf("ranked = %+v, want only y1", ranked)
	}
}

func TestActiveTitles(t *testing.T) {
	records := []listing.Record{
		{Title: "1001 jacket", State: listing.StateActive},
		{Title: "1002 scarf", State: listing.StateEndedUnsold},
		{Title: "", State: listing.StateActive},
	}
	titles := ActiveTitles(records)
	if _, ok := titles["1001 jacket"]; !ok {
		t.Fatal("active title missing")
	}
	if len(titles) != 1 {
		t.Fatalf("titles = %v", titles)
	}
}
