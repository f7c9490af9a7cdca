package models

import "time"

// Vendor account statuses. Only active (and pending, which is awaiting
// review but still operational) vendors accept bookings.
const (
	VendorStatusPending   = "pending"
	VendorStatusActive    = "active"
	VendorStatusSuspended = "suspended"
	VendorStatusRejected  = "rejected"
)

// Vendor is the business entity that owns services and staff.
type Vendor struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Status    string    `bson:"status" json:"status"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// AcceptsBookings reports whether bookings may be created against the vendor.
func (v *Vendor) AcceptsBookings() bool {
	return v.Status != VendorStatusSuspended && v.Status != VendorStatusRejected
}
