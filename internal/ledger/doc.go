// Package ledger persists the (subject, kind) pairs whose actions have
// already been applied, so re-runs skip them.
//
// The ledger is the durable idempotency boundary of the whole system. Every
// MarkDone is flushed before the caller treats the action as complete; a
// crash between the real-world side effect and the flush can therefore cause
// at most one duplicate attempt, never an unbounded retry loop. Marketplace
// effects are assumed safe to apply twice (delisting an already-delisted item
// is a no-op upstream).
//
// Three backends implement the Store interface: an append-only flat file
// locked against concurrent writers, a SQLite database in the same shape used
// for other durable state, and an in-memory store for tests and dry runs. An
// unreadable ledger is fatal for the run; proceeding without idempotency
// guarantees risks duplicate real-world postings.
package ledger
