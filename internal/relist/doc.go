// Package relist ranks ended-unsold listings for re-submission.
//
// Engagement history is the asset being recovered: a listing that attracted
// bids or watchers once is the cheapest thing to put back on the market. The
// ordering is a fixed total order so repeated runs over the same export
// select the same listings.
package relist
