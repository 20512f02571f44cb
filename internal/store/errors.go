package store

import "errors"

// ErrStorageUnavailable indicates the backing store could not be opened.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrTransactionFailed indicates an underlying write was aborted.
var ErrTransactionFailed = errors.New("transaction failed")

// ErrDuplicateKey indicates Add was called with an id that already exists.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrNotSandbox indicates a sandbox-only operation was attempted on the
// live store.
var ErrNotSandbox = errors.New("operation permitted on sandbox store only")
