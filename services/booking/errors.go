package booking

import (
	"errors"
	"fmt"

	"glowbook/database/repository"
)

// Stable reason codes surfaced to clients. Client UIs branch on these, so
// they are part of the API contract.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeServiceNotFound   = "SERVICE_NOT_FOUND"
	CodeServiceInactive   = "SERVICE_INACTIVE"
	CodeVendorNotFound    = "VENDOR_NOT_FOUND"
	CodeVendorInactive    = "VENDOR_INACTIVE"
	CodeVendorMismatch    = "VENDOR_MISMATCH"
	CodeStaffNotFound     = "STAFF_NOT_FOUND"
	CodeStaffInactive     = "STAFF_INACTIVE"
	CodeStaffVendorMismatch  = "STAFF_VENDOR_MISMATCH"
	CodeStaffServiceMismatch = "STAFF_SERVICE_MISMATCH"
	CodeStaffUnavailable  = "STAFF_UNAVAILABLE"
	CodeNoStaffAvailable  = "NO_STAFF_AVAILABLE"
	CodeTimeConflict      = "STAFF_TIME_CONFLICT"
	CodeBookingNotFound   = "BOOKING_NOT_FOUND"
	CodeNotBookingOwner   = "NOT_BOOKING_OWNER"
	CodeAlreadyFinalized  = "BOOKING_ALREADY_FINALIZED"
	CodeCancellationWindow = "CANCELLATION_WINDOW"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

// Error is a business rejection with a stable machine-readable code. These
// are expected outcomes, never retried automatically.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError builds a rejection with the given reason code.
func NewError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps a scheduling rejection from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// classifyRepoError converts repository sentinels into the matching
// rejection; anything unrecognized passes through for the generic 500 path.
func classifyRepoError(err error, notFoundCode string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NewError(notFoundCode, "%v", err)
	case errors.Is(err, repository.ErrConflict):
		return NewError(CodeTimeConflict, "requested time overlaps an existing booking")
	case errors.Is(err, repository.ErrUnavailable):
		return NewError(CodeStorageUnavailable, "storage temporarily unavailable, please retry")
	default:
		return err
	}
}
