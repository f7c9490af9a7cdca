package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// RefundHandler initiates refunds for cancelled paid bookings.
type RefundHandler interface {
	InitiateRefund(ctx context.Context, paymentIntentID string, amount float64) (string, error)
}

// StripeRefundHandler is the production implementation.
type StripeRefundHandler struct {
	logger *zap.Logger
}

func NewStripeRefundHandler(logger *zap.Logger) *StripeRefundHandler {
	return &StripeRefundHandler{logger: logger}
}

// InitiateRefund creates a Stripe refund against the booking's payment
// intent and returns the refund ID. Amount is in major currency units.
func (h *StripeRefundHandler) InitiateRefund(ctx context.Context, paymentIntentID string, amount float64) (string, error) {
	if paymentIntentID == "" {
		return "", fmt.Errorf("refund: booking has no payment intent")
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(int64(amount * 100)),
	}
	params.Context = ctx

	r, err := refund.New(params)
	if err != nil {
		return "", fmt.Errorf("refund: stripe refund failed for %s: %w", paymentIntentID, err)
	}
	h.logger.Info("refund initiated",
		zap.String("paymentIntent", paymentIntentID),
		zap.String("refundID", r.ID))
	return r.ID, nil
}
