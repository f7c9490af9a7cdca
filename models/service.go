package models

import "time"

// Service is a bookable offering owned by exactly one vendor. Price and
// duration may be edited later; existing bookings keep their snapshots.
type Service struct {
	ID              string    `bson:"id" json:"id"`
	VendorID        string    `bson:"vendor_id" json:"vendorId"`
	Name            string    `bson:"name" json:"name"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	Price           float64   `bson:"price" json:"price"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	Active          bool      `bson:"active" json:"active"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}
