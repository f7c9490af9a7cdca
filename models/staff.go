package models

import (
	"strings"
	"time"
)

// DaySchedule is one weekday's working window. Start and End are "15:04"
// time-of-day strings in the vendor's local time.
type DaySchedule struct {
	Available bool   `bson:"available" json:"available"`
	Start     string `bson:"start,omitempty" json:"start,omitempty"`
	End       string `bson:"end,omitempty" json:"end,omitempty"`
}

// Staff is a bookable person belonging to exactly one vendor. An empty
// ServiceIDs list means the staff member can perform every service the
// vendor offers. Schedule is keyed by lowercase weekday name ("monday").
type Staff struct {
	ID         string                 `bson:"id" json:"id"`
	VendorID   string                 `bson:"vendor_id" json:"vendorId"`
	Name       string                 `bson:"name" json:"name"`
	Active     bool                   `bson:"active" json:"active"`
	ServiceIDs []string               `bson:"service_ids,omitempty" json:"serviceIds,omitempty"`
	Schedule   map[string]DaySchedule `bson:"schedule" json:"schedule"`
	CreatedAt  time.Time              `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time              `bson:"updated_at" json:"updatedAt"`
}

// ScheduleFor returns the schedule entry for the weekday of t.
func (s *Staff) ScheduleFor(t time.Time) (DaySchedule, bool) {
	day, ok := s.Schedule[strings.ToLower(t.Weekday().String())]
	return day, ok
}

// CanPerform reports whether the staff member is qualified for a service.
func (s *Staff) CanPerform(serviceID string) bool {
	if len(s.ServiceIDs) == 0 {
		return true
	}
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
