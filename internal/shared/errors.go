package shared

import "errors"

var (
	// ErrNotFound indicates a referenced entity is absent from the store.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates input failed validation before any write.
	ErrValidation = errors.New("validation failed")
	// ErrStoreUnavailable indicates a record store I/O failure.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrInconsistentState indicates a multi-write sequence stopped midway
	// and left related rows disagreeing; a repeat of the operation repairs it.
	ErrInconsistentState = errors.New("inconsistent state")
)
