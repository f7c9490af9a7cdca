package models

// CreateBookingInput is the request body for booking creation. VendorID is
// informational only: the server derives the real vendor from the service
// and rejects a mismatch rather than trusting the client.
type CreateBookingInput struct {
	ServiceID       string `json:"serviceId" binding:"required"`
	VendorID        string `json:"vendorId"`
	Datetime        string `json:"datetime" binding:"required"`
	Notes           string `json:"notes" binding:"max=500"`
	StaffID         string `json:"staffId"`
	StaffPreference string `json:"staffPreference"`
}

// AvailabilityQuery is the read-only availability request.
type AvailabilityQuery struct {
	StaffID         string `form:"staffId" binding:"required"`
	Date            string `form:"date" binding:"required"`
	DurationMinutes int    `form:"duration" binding:"required,gt=0"`
}

// DayAvailability is what the availability endpoint returns. Slots use the
// same evaluator and conflict rule as the booking write path so the UI and
// the write path never disagree.
type DayAvailability struct {
	IsAvailable    bool     `json:"isAvailable"`
	AvailableSlots []string `json:"availableSlots"`
}
