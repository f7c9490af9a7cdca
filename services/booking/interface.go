package booking

import (
	"context"
	"time"

	bookingRepo "glowbook/database/repository/booking"
	serviceRepo "glowbook/database/repository/service"
	staffRepo "glowbook/database/repository/staff"
	vendorRepo "glowbook/database/repository/vendor"
	"glowbook/models"
)

// BookingService is the scheduling core invoked by the HTTP layer.
type BookingService interface {
	CreateBooking(ctx context.Context, customerID string, in models.CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error)
	GetDayAvailability(ctx context.Context, q models.AvailabilityQuery) (*models.DayAvailability, error)
	GetBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	ListVendorServices(ctx context.Context, vendorID string) ([]models.Service, error)
}

// Dispatcher hands best-effort side effects to the out-of-band worker.
// Implementations must never block the booking decision; returned errors are
// logged by the caller and swallowed.
type Dispatcher interface {
	BookingConfirmed(ctx context.Context, b models.Booking) error
	BookingCancelled(ctx context.Context, b models.Booking) error
	RefundRequested(ctx context.Context, b models.Booking) error
	ReminderAt(ctx context.Context, b models.Booking, fireAt time.Time) error
}

// Settings are the scheduling business constants, injected from config.
type Settings struct {
	CancellationWindow time.Duration
	SlotInterval       time.Duration
	PastGrace          time.Duration
	ReminderLead       time.Duration
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	ServiceRepo serviceRepo.ServiceRepository
	VendorRepo  vendorRepo.VendorRepository
	StaffRepo   staffRepo.StaffRepository
	BookingRepo bookingRepo.BookingRepository
	Dispatch    Dispatcher
	Settings    Settings

	// Now is the clock; tests inject a fixed one.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
