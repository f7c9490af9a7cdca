package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"glowbook/database/repository"
	"glowbook/models"
)

// Fixed clock for every test: Monday 2026-03-02 08:00 UTC.
var testNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

type fakeServiceRepo struct {
	services map[string]models.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return &s, nil
	}
	return nil, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
}

func (f *fakeServiceRepo) ListByVendor(_ context.Context, vendorID string) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.VendorID == vendorID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeVendorRepo struct {
	vendors map[string]models.Vendor
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id string) (*models.Vendor, error) {
	if v, ok := f.vendors[id]; ok {
		return &v, nil
	}
	return nil, fmt.Errorf("vendor %s: %w", id, repository.ErrNotFound)
}

type fakeStaffRepo struct {
	staff []models.Staff
}

func (f *fakeStaffRepo) GetByID(_ context.Context, id string) (*models.Staff, error) {
	for _, st := range f.staff {
		if st.ID == id {
			st := st
			return &st, nil
		}
	}
	return nil, fmt.Errorf("staff %s: %w", id, repository.ErrNotFound)
}

func (f *fakeStaffRepo) ListCandidates(_ context.Context, vendorID, serviceID string) ([]models.Staff, error) {
	var out []models.Staff
	for _, st := range f.staff {
		if st.VendorID == vendorID && st.Active && st.CanPerform(serviceID) {
			out = append(out, st)
		}
	}
	return out, nil
}

// fakeBookingRepo guards its state with a mutex so the concurrency test can
// hammer CreateIfNoConflict from many goroutines; the check-then-insert is
// atomic under the lock, mirroring the transactional repository.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []models.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

func (f *fakeBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) countOverlappingLocked(staffID string, start, end time.Time) int64 {
	var n int64
	for _, b := range f.bookings {
		if b.StaffID != staffID {
			continue
		}
		active := b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed
		if active && b.Start.Before(end) && b.End.After(start) {
			n++
		}
	}
	return n
}

func (f *fakeBookingRepo) CountOverlapping(_ context.Context, staffID string, start, end time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countOverlappingLocked(staffID, start, end), nil
}

func (f *fakeBookingRepo) ListActiveForStaffRange(_ context.Context, staffID string, from, to time.Time) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		active := b.Status == models.BookingStatusPending || b.Status == models.BookingStatusConfirmed
		if b.StaffID == staffID && active && b.Start.Before(to) && b.End.After(from) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateIfNoConflict(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.StaffID != "" && f.countOverlappingLocked(booking.StaffID, booking.Start, booking.End) > 0 {
		return fmt.Errorf("staff %s double booked: %w", booking.StaffID, repository.ErrConflict)
	}
	f.bookings = append(f.bookings, *booking)
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id, cancelledBy string, at time.Time, paymentStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		b := &f.bookings[i]
		if b.ID != id {
			continue
		}
		if b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed {
			return fmt.Errorf("booking %s: %w", id, repository.ErrStale)
		}
		b.Status = models.BookingStatusCancelled
		b.CancelledAt = &at
		b.CancelledBy = cancelledBy
		b.PaymentStatus = paymentStatus
		return nil
	}
	return fmt.Errorf("booking %s: %w", id, repository.ErrStale)
}

func (f *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].PaymentStatus = status
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
}

func (f *fakeBookingRepo) MarkReminderSent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].ReminderSent = true
			return nil
		}
	}
	return nil
}

// recordingDispatcher captures the side effects the orchestrator emits.
type recordingDispatcher struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
	refunds   []string
	reminders []time.Time
	fail      bool
}

func (d *recordingDispatcher) BookingConfirmed(_ context.Context, b models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return fmt.Errorf("queue down")
	}
	d.confirmed = append(d.confirmed, b.ID)
	return nil
}

func (d *recordingDispatcher) BookingCancelled(_ context.Context, b models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return fmt.Errorf("queue down")
	}
	d.cancelled = append(d.cancelled, b.ID)
	return nil
}

func (d *recordingDispatcher) RefundRequested(_ context.Context, b models.Booking) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return fmt.Errorf("queue down")
	}
	d.refunds = append(d.refunds, b.ID)
	return nil
}

func (d *recordingDispatcher) ReminderAt(_ context.Context, _ models.Booking, fireAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fail {
		return fmt.Errorf("queue down")
	}
	d.reminders = append(d.reminders, fireAt)
	return nil
}

// weekdaySchedule builds a Mon-Fri 09:00-18:00 schedule.
func weekdaySchedule() map[string]models.DaySchedule {
	sched := map[string]models.DaySchedule{
		"saturday": {Available: false},
		"sunday":   {Available: false},
	}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		sched[day] = models.DaySchedule{Available: true, Start: "09:00", End: "18:00"}
	}
	return sched
}

type fixture struct {
	svc      *DefaultBookingService
	bookings *fakeBookingRepo
	staff    *fakeStaffRepo
	dispatch *recordingDispatcher
}

// newFixture wires a scheduling service over one vendor with one 60-minute
// service and one staff member working weekdays 09:00-18:00.
func newFixture() *fixture {
	bookings := &fakeBookingRepo{}
	staff := &fakeStaffRepo{staff: []models.Staff{{
		ID:       "staff-1",
		VendorID: "vendor-1",
		Name:     "Dana",
		Active:   true,
		Schedule: weekdaySchedule(),
	}}}
	dispatch := &recordingDispatcher{}

	svc := &DefaultBookingService{
		ServiceRepo: &fakeServiceRepo{services: map[string]models.Service{
			"svc-cut": {ID: "svc-cut", VendorID: "vendor-1", Name: "Haircut", Price: 45, DurationMinutes: 60, Active: true},
		}},
		VendorRepo: &fakeVendorRepo{vendors: map[string]models.Vendor{
			"vendor-1": {ID: "vendor-1", Name: "Shear Bliss", Status: models.VendorStatusActive},
		}},
		StaffRepo:   staff,
		BookingRepo: bookings,
		Dispatch:    dispatch,
		Settings: Settings{
			CancellationWindow: 2 * time.Hour,
			SlotInterval:       30 * time.Minute,
			PastGrace:          5 * time.Minute,
			ReminderLead:       2 * time.Hour,
		},
		Now: func() time.Time { return testNow },
	}
	return &fixture{svc: svc, bookings: bookings, staff: staff, dispatch: dispatch}
}

// at returns an RFC3339 instant on the fixture's Monday.
func at(hour, min int) string {
	return time.Date(2026, time.March, 2, hour, min, 0, 0, time.UTC).Format(time.RFC3339)
}
