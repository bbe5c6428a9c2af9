package model

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a charge does not exist, or when a stored
	// charge has no usable company association.
	ErrNotFound = errors.New("charge not found")
	// ErrStorageUnavailable is returned when the record store cannot be
	// reached or fails a read/write. Safe for the caller to retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrNotificationFailed is returned when a write succeeded (or, for
	// deletes, was about to happen) but the change notification could not be
	// published. Distinct from ErrStorageUnavailable so callers can tell
	// "data not durably changed" from "data changed but consumers not told".
	ErrNotificationFailed = errors.New("change notification failed")
	// ErrInvalidInput is returned for malformed payloads, rejected before any
	// ordering check or mutation runs.
	ErrInvalidInput = errors.New("invalid input")
)

// IsCanceled returns true if the error is due to context cancellation or
// deadline expiry, directly or wrapped.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
