package localstore

import (
	"errors"
	"fmt"
)

// ErrDowngrade is returned by Open when the requested schema version is
// lower than the version already persisted on disk. Downgrades are not
// supported; failing fast beats silently truncating cached data.
var ErrDowngrade = errors.New("localstore: schema version downgrade is not supported")

// ConflictError signals a duplicate-key insert where uniqueness is
// required. The caller attempted to re-add a record without clearing
// the existing one first.
type ConflictError struct {
	Table string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("localstore: duplicate key in table %s: %v", e.Table, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// SyncAbortedError wraps any error raised inside a write transaction.
// When it is returned, every write made by the transaction body has
// been rolled back; no partial state is visible.
type SyncAbortedError struct {
	Err error
}

func (e *SyncAbortedError) Error() string {
	return fmt.Sprintf("localstore: transaction aborted, all writes rolled back: %v", e.Err)
}

func (e *SyncAbortedError) Unwrap() error { return e.Err }
