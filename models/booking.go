package models

import "time"

// Booking status lifecycle.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

// Payment status values carried on a booking.
const (
	PaymentStatusPending       = "pending"
	PaymentStatusPaid          = "paid"
	PaymentStatusRefundPending = "refund_pending"
	PaymentStatusRefunded      = "refunded"
	PaymentStatusRefundFailed  = "refund_failed"
)

// Staff preference supplied by the customer.
const (
	StaffPreferenceAny      = "any"
	StaffPreferenceSpecific = "specific"
)

// Booking is the central scheduling record. [Start, End) is the half-open
// interval the booking occupies for conflict purposes; End is denormalized
// from Start plus DurationMinutes at creation so the overlap query stays a
// plain range comparison. Duration and price are snapshots of the service at
// booking time and never change with later service edits.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	CustomerID      string     `bson:"customer_id" json:"customerId"`
	VendorID        string     `bson:"vendor_id" json:"vendorId"`
	ServiceID       string     `bson:"service_id" json:"serviceId"`
	StaffID         string     `bson:"staff_id,omitempty" json:"staffId,omitempty"`
	StaffPreference string     `bson:"staff_preference" json:"staffPreference"`
	Start           time.Time  `bson:"start" json:"datetime"`
	End             time.Time  `bson:"end" json:"end"`
	DurationMinutes int        `bson:"duration_minutes" json:"durationMinutes"`
	Status          string     `bson:"status" json:"status"`
	PaymentStatus   string     `bson:"payment_status" json:"paymentStatus"`
	PaymentIntentID string     `bson:"payment_intent_id,omitempty" json:"-"`
	TotalPrice      float64    `bson:"total_price" json:"totalPrice"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelledAt     *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy     string     `bson:"cancelled_by,omitempty" json:"cancelledBy,omitempty"`
	ReminderSent    bool       `bson:"reminder_sent" json:"reminderSent"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}

// ActiveBookingStatuses are the statuses that occupy a staff member's time.
// Cancelled, completed and no-show bookings never count for conflicts.
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed}

// IsFinalized reports whether the booking has left the cancellable part of
// its lifecycle.
func (b *Booking) IsFinalized() bool {
	switch b.Status {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}
