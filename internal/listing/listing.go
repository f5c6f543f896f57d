package listing

import (
	"strings"
	"time"
)

// Platform identifies one marketplace. Values come from configuration; the
// reconciler treats them as opaque labels.
type Platform string

// Engagement captures the interest counters a marketplace reports for a
// listing. Bids is zero on marketplaces without auctions.
type Engagement struct {
	Bids    int
	Watches int
	Views   int
}

// Record is one normalized row from a marketplace export.
type Record struct {
	Platform    Platform
	ListingID   string
	URL         string
	Title       string
	Description string

	// Key is the cross-marketplace product key extracted from the listing
	// text. Empty when extraction failed; keyless records are invisible to
	// reconciliation.
	Key string

	RawStatus string
	State     State
	Stock     *int
	Price     int
	Condition string

	Engagement Engagement
	UpdatedAt  time.Time
}

// SubjectID returns the identifier used for ledger entries and actions: the
// marketplace-native listing id when present, otherwise the listing URL.
func (r Record) SubjectID() string {
	if id := strings.TrimSpace(r.ListingID); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL)
}

// HasKey reports whether the record carries a resolved product key.
func (r Record) HasKey() bool {
	return r.Key != ""
}
