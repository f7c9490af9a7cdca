// Package repository holds the sentinel errors shared by the Mongo-backed
// repositories. Callers classify outcomes with errors.Is rather than by
// inspecting driver errors.
package repository

import "errors"

var (
	// ErrNotFound means the referenced document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrConflict means a write was rejected because it would overlap an
	// active booking for the same staff member.
	ErrConflict = errors.New("overlapping booking exists")

	// ErrStale means an optimistic update matched no document, usually
	// because the record changed state under the caller.
	ErrStale = errors.New("document changed concurrently")

	// ErrUnavailable means the storage engine could not be reached or the
	// operation timed out. Safe to retry.
	ErrUnavailable = errors.New("storage unavailable")
)
