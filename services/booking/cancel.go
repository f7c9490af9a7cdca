package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"glowbook/database/repository"
	"glowbook/models"
	"glowbook/utils"
)

// CancelBooking cancels a booking on behalf of its owning customer. The
// cancellation window is enforced against the booking's start time; a paid
// booking moves to refund_pending and a refund task is dispatched
// best-effort, so a refund failure never undoes the cancellation.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, customerID, bookingID string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, classifyRepoError(err, CodeBookingNotFound)
	}
	if b.CustomerID != customerID {
		return nil, NewError(CodeNotBookingOwner, "booking %s belongs to another customer", bookingID)
	}
	if b.IsFinalized() {
		return nil, NewError(CodeAlreadyFinalized, "booking %s is already %s", bookingID, b.Status)
	}
	now := s.now()
	if b.Start.Sub(now) < s.Settings.CancellationWindow {
		return nil, NewError(CodeCancellationWindow,
			"bookings cannot be cancelled within %s of the start time", s.Settings.CancellationWindow)
	}

	paymentStatus := b.PaymentStatus
	refund := b.PaymentStatus == models.PaymentStatusPaid
	if refund {
		paymentStatus = models.PaymentStatusRefundPending
	}

	if err := s.BookingRepo.Cancel(ctx, bookingID, customerID, now, paymentStatus); err != nil {
		// A concurrent cancel or completion won the optimistic update.
		if errors.Is(err, repository.ErrStale) {
			return nil, NewError(CodeAlreadyFinalized, "booking %s was finalized concurrently", bookingID)
		}
		return nil, classifyRepoError(err, CodeBookingNotFound)
	}

	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &now
	b.CancelledBy = customerID
	b.PaymentStatus = paymentStatus
	b.UpdatedAt = now

	logger := utils.GetLogger()
	logger.Info("booking cancelled",
		zap.String("bookingID", b.ID),
		zap.String("customerID", customerID),
		zap.Bool("refundPending", refund))

	if s.Dispatch != nil {
		if err := s.Dispatch.BookingCancelled(ctx, *b); err != nil {
			logger.Warn("failed to dispatch cancellation notice",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
		if refund {
			if err := s.Dispatch.RefundRequested(ctx, *b); err != nil {
				logger.Warn("failed to dispatch refund request",
					zap.String("bookingID", b.ID), zap.Error(err))
			}
		}
	}
	return b, nil
}
