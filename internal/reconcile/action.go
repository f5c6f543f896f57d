package reconcile

import "crosslist/internal/listing"

// Kind enumerates the work a listing can require.
type Kind string

const (
	KindDelist         Kind = "delist"
	KindPruneDuplicate Kind = "prune_duplicate"
	KindRelist         Kind = "relist"
	KindCreateNew      Kind = "create_new"
)

// Payload carries the source-of-truth snapshot an executor needs to relist or
// create a listing. Delist and prune actions leave it zero.
type Payload struct {
	Title       string
	Description string
	Price       int
	Condition   string

	// ImageKey selects the image set for the product; executors resolve it
	// against their own image storage.
	ImageKey string
}

// Action is one pending unit of required change. Actions are pure data: they
// carry no execution state and no reference to how a marketplace is driven.
type Action struct {
	Kind     Kind
	Platform listing.Platform

	// Subject is the marketplace-native listing id, or the listing URL when
	// the export carries no id. Paired with Kind it forms the ledger key.
	Subject string

	// Key is the product key the action was derived from, when known.
	Key string

	// Reason is a short human-readable cause recorded in logs and plans.
	Reason string

	Payload Payload
}

// SnapshotPayload builds a relist/create payload from a source-of-truth
// record. The product key doubles as the image selector.
func SnapshotPayload(record listing.Record) Payload {
	return Payload{
		Title:       record.Title,
		Description: record.Description,
		Price:       record.Price,
		Condition:   record.Condition,
		ImageKey:    record.Key,
	}
}
