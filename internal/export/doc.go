// Package export reads marketplace export files and normalizes their rows
// into listing records.
//
// Export schemas drift: column names change between marketplace releases,
// encodings vary by download path, and status columns occasionally disappear.
// The reader therefore resolves a ColumnSchema once per file through an
// ordered list of header matchers (exact names first, regex patterns second)
// and tries a fixed sequence of character encodings until one decodes the
// header and at least one data row cleanly. A file without a resolvable
// status column still loads, but every record is marked status-unknown so the
// reconciler can exclude it from delist and prune decisions.
package export
