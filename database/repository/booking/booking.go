package bookingRepo

import (
	"context"
	"time"

	"glowbook/models"
)

// BookingRepository defines data access for booking records, including the
// conflict queries the scheduler depends on.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)

	// ListByCustomer retrieves all bookings owned by a customer, newest first.
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)

	// CountOverlapping counts active (pending or confirmed) bookings for the
	// staff member whose [start, end) interval overlaps the candidate
	// [start, end). Back-to-back intervals do not overlap.
	CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int64, error)

	// ListActiveForStaffRange retrieves the active bookings of a staff member
	// that overlap [from, to), used to filter a day's slot grid in one query.
	ListActiveForStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]models.Booking, error)

	// CreateIfNoConflict inserts the booking inside a transaction that
	// re-runs the overlap count first. Returns repository.ErrConflict and
	// writes nothing when an overlapping active booking exists.
	CreateIfNoConflict(ctx context.Context, booking *models.Booking) error

	// Cancel transitions a non-finalized booking to cancelled, recording who
	// cancelled it and when, and moving the payment status in the same
	// update. Returns repository.ErrStale when the booking was already
	// finalized by a concurrent request.
	Cancel(ctx context.Context, id, cancelledBy string, at time.Time, paymentStatus string) error

	// UpdatePaymentStatus sets the payment status, used by the refund worker.
	UpdatePaymentStatus(ctx context.Context, id, status string) error

	// MarkReminderSent flags the booking so the reminder fires once.
	MarkReminderSent(ctx context.Context, id string) error
}
