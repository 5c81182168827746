// Package engine implements the multi-source scan engine.
//
// The engine owns all per-source scan state: the append-only token stream,
// the first-occurrence index, the stored miss count, and the line clusters.
// Raw text enters through Ingest; every other operation is a query over the
// accumulated state.
//
// ARCHITECTURE:
//
// Coarse Lock:
// One non-reentrant mutex serializes every public operation for the duration
// of the call. Verification recomputes and stores the miss count, so even
// "read" queries count as mutations for locking purposes. Public methods
// never call each other while holding the lock; shared logic lives in
// *Locked helpers that require the lock to be held by the caller.
//
// Unknown Sources:
// Queries against a source key that was never ingested return neutral
// defaults (false, zero, empty) rather than errors. "No data yet" is a
// normal query outcome, not a fault. No engine method returns an error;
// all methods are total over their declared domains.
//
// INVARIANTS:
//   - index[tokens[0]] == 0 and index[tokens[last]] == len(tokens)-1 once a
//     source is fully ingested (the completeness predicate)
//   - the index never shrinks; ingest records only first occurrences
//   - one cluster per ingested line that produced at least one token
//   - a nonzero stored miss count signals a tokenization or index bug, not
//     a recoverable runtime condition
package engine
