package booking

import (
	"context"

	"glowbook/models"
)

// GetBooking fetches one booking, restricted to its owning customer.
func (s *DefaultBookingService) GetBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, classifyRepoError(err, CodeBookingNotFound)
	}
	if b.CustomerID != customerID {
		return nil, NewError(CodeNotBookingOwner, "booking %s belongs to another customer", bookingID)
	}
	return b, nil
}

// ListBookings returns the customer's bookings, newest first.
func (s *DefaultBookingService) ListBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	bookings, err := s.BookingRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, classifyRepoError(err, CodeBookingNotFound)
	}
	return bookings, nil
}

// ListVendorServices returns a vendor's bookable services for slot pickers.
// Inactive services are hidden; an unknown vendor is a not-found.
func (s *DefaultBookingService) ListVendorServices(ctx context.Context, vendorID string) ([]models.Service, error) {
	if _, err := s.VendorRepo.GetByID(ctx, vendorID); err != nil {
		return nil, classifyRepoError(err, CodeVendorNotFound)
	}
	services, err := s.ServiceRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, classifyRepoError(err, CodeVendorNotFound)
	}
	active := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	return active, nil
}
