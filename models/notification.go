package models

// BookingEventPayload is the queue payload for booking push notifications.
type BookingEventPayload struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	VendorID   string `json:"vendorId"`
	StaffID    string `json:"staffId,omitempty"`
	Datetime   string `json:"datetime"`
	Event      string `json:"event"` // "confirmed" | "cancelled"
}

// RefundPayload is the queue payload for refund initiation.
type RefundPayload struct {
	BookingID  string  `json:"bookingId"`
	CustomerID string  `json:"customerId"`
	Amount     float64 `json:"amount"`
}

// ReminderPayload is the queue payload for booking reminders.
type ReminderPayload struct {
	BookingID  string `json:"bookingId"`
	CustomerID string `json:"customerId"`
	Datetime   string `json:"datetime"`
}
