// Package store provides SQLite-backed durable storage for application
// records.
//
// Two fully isolated instances exist, selected by Mode:
//   - Live: the user's real data (live.db)
//   - Sandbox: reseedable demo data (sandbox.db)
//
// The two instances never share a file and are never opened against the
// same logical dataset. ClearAll is permitted on the sandbox only.
//
// Records persist as one row per id with the record's JSON document in a
// TEXT column - a keyed object store. The JSON document is the contract:
// it is written and read byte-for-field identically to the export format.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - single connection: SQLite supports one writer at a time
//
// # Failure Model
//
// Every operation reports failure to the caller; nothing is swallowed.
// Open failures wrap ErrStorageUnavailable, aborted writes wrap
// ErrTransactionFailed, and Add on an existing id wraps ErrDuplicateKey.
package store
