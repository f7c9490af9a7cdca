package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"glowbook/models"
	"glowbook/utils"
)

// CreateBooking runs one booking attempt end to end: validate the request,
// resolve the service and its vendor, resolve staffing, then persist through
// the transactional conflict gate. The vendor is always derived from the
// service; a client-supplied vendorId that disagrees is a hard rejection.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, customerID string, in models.CreateBookingInput) (*models.Booking, error) {
	logger := utils.GetLogger()

	// Step 1: validate input.
	start, err := time.Parse(time.RFC3339, in.Datetime)
	if err != nil {
		return nil, NewError(CodeValidation, "datetime must be an ISO-8601 instant: %q", in.Datetime)
	}
	now := s.now()
	if start.Before(now.Add(-s.Settings.PastGrace)) {
		return nil, NewError(CodeValidation, "datetime is in the past")
	}
	pref := in.StaffPreference
	switch pref {
	case "":
		pref = models.StaffPreferenceAny
	case models.StaffPreferenceAny, models.StaffPreferenceSpecific:
	default:
		return nil, NewError(CodeValidation, "staffPreference must be %q or %q", models.StaffPreferenceAny, models.StaffPreferenceSpecific)
	}
	if pref == models.StaffPreferenceSpecific && in.StaffID == "" {
		return nil, NewError(CodeValidation, "staffId is required when staffPreference is %q", models.StaffPreferenceSpecific)
	}

	// Step 2: resolve service, derive vendor server-side.
	svc, err := s.ServiceRepo.GetByID(ctx, in.ServiceID)
	if err != nil {
		return nil, classifyRepoError(err, CodeServiceNotFound)
	}
	if !svc.Active {
		return nil, NewError(CodeServiceInactive, "service %s is not bookable", svc.ID)
	}
	if in.VendorID != "" && in.VendorID != svc.VendorID {
		return nil, NewError(CodeVendorMismatch, "service %s does not belong to vendor %s", svc.ID, in.VendorID)
	}
	vendor, err := s.VendorRepo.GetByID(ctx, svc.VendorID)
	if err != nil {
		return nil, classifyRepoError(err, CodeVendorNotFound)
	}
	if !vendor.AcceptsBookings() {
		return nil, NewError(CodeVendorInactive, "vendor %s is not accepting bookings", vendor.ID)
	}

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	end := start.Add(duration)

	// Step 3: resolve staffing.
	var staffID string
	if in.StaffID != "" {
		st, err := s.StaffRepo.GetByID(ctx, in.StaffID)
		if err != nil {
			return nil, classifyRepoError(err, CodeStaffNotFound)
		}
		if st.VendorID != svc.VendorID {
			return nil, NewError(CodeStaffVendorMismatch, "staff %s does not belong to vendor %s", st.ID, svc.VendorID)
		}
		if !st.Active {
			return nil, NewError(CodeStaffInactive, "staff %s is not active", st.ID)
		}
		if !st.CanPerform(svc.ID) {
			return nil, NewError(CodeStaffServiceMismatch, "staff %s is not qualified for service %s", st.ID, svc.ID)
		}
		if !fitsSchedule(st, start, duration) {
			return nil, NewError(CodeStaffUnavailable, "staff %s does not work the requested time", st.ID)
		}
		n, err := s.BookingRepo.CountOverlapping(ctx, st.ID, start, end)
		if err != nil {
			return nil, classifyRepoError(err, CodeStaffNotFound)
		}
		if n > 0 {
			return nil, NewError(CodeTimeConflict, "staff %s already has a booking in that window", st.ID)
		}
		staffID = st.ID
	} else {
		assignedID, hadCandidates, err := s.autoAssign(ctx, svc.VendorID, svc.ID, start, duration)
		if err != nil {
			return nil, err
		}
		if hadCandidates && assignedID == "" {
			return nil, NewError(CodeNoStaffAvailable, "no staff available for the requested time")
		}
		// A vendor with no qualified staff configured takes the booking
		// unassigned.
		staffID = assignedID
	}

	// Steps 4-5: persist through the atomic gate. The overlap count re-runs
	// inside the insert transaction, closing the race window between
	// staffing resolution and the write.
	booking := &models.Booking{
		ID:              uuid.New().String(),
		CustomerID:      customerID,
		VendorID:        svc.VendorID,
		ServiceID:       svc.ID,
		StaffID:         staffID,
		StaffPreference: pref,
		Start:           start,
		End:             end,
		DurationMinutes: svc.DurationMinutes,
		Status:          models.BookingStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		TotalPrice:      svc.Price,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.BookingRepo.CreateIfNoConflict(ctx, booking); err != nil {
		return nil, classifyRepoError(err, CodeServiceNotFound)
	}

	logger.Info("booking created",
		zap.String("bookingID", booking.ID),
		zap.String("vendorID", booking.VendorID),
		zap.String("staffID", booking.StaffID),
		zap.Time("start", booking.Start))

	// Step 6: best-effort side effects after commit. Failures are logged,
	// never propagated.
	s.dispatchPostCommit(ctx, booking, now)

	return booking, nil
}

func (s *DefaultBookingService) dispatchPostCommit(ctx context.Context, booking *models.Booking, now time.Time) {
	if s.Dispatch == nil {
		return
	}
	logger := utils.GetLogger()
	if err := s.Dispatch.BookingConfirmed(ctx, *booking); err != nil {
		logger.Warn("failed to dispatch booking confirmation",
			zap.String("bookingID", booking.ID), zap.Error(err))
	}
	if fireAt := booking.Start.Add(-s.Settings.ReminderLead); fireAt.After(now) {
		if err := s.Dispatch.ReminderAt(ctx, *booking, fireAt); err != nil {
			logger.Warn("failed to schedule booking reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
}
