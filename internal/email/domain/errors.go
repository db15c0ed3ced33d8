package domain

import (
	"errors"
	"fmt"
)

// ErrAuth signals a missing or expired mailbox credential. It is terminal for
// the current operation and must be surfaced before any per-item work begins.
var ErrAuth = errors.New("invalid or expired credentials")

// ErrNotFound signals a lookup miss in one of the collections
var ErrNotFound = errors.New("record not found")

// UpstreamError wraps a mail-provider failure
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StorageError wraps a persistence failure. Batch callers treat it as
// non-fatal: log, count, continue with the remaining items.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
