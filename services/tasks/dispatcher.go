package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"glowbook/config"
	"glowbook/models"
)

// AsynqDispatcher hands booking side effects to the background worker via
// the Redis-backed task queue. Every method only enqueues; delivery runs
// out-of-band so the booking decision never waits on a push or a refund.
type AsynqDispatcher struct {
	client *asynq.Client
}

// NewAsynqDispatcher builds a dispatcher against the configured Redis queue.
func NewAsynqDispatcher() *AsynqDispatcher {
	return &AsynqDispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPass,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// Close releases the underlying queue connection.
func (d *AsynqDispatcher) Close() error {
	return d.client.Close()
}

func (d *AsynqDispatcher) bookingEvent(ctx context.Context, taskType, event string, b models.Booking) error {
	task, err := NewBookingEventTask(taskType, models.BookingEventPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		VendorID:   b.VendorID,
		StaffID:    b.StaffID,
		Datetime:   b.Start.Format(time.RFC3339),
		Event:      event,
	})
	if err != nil {
		return fmt.Errorf("building %s task: %w", taskType, err)
	}
	if _, err := d.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueueing %s task: %w", taskType, err)
	}
	return nil
}

func (d *AsynqDispatcher) BookingConfirmed(ctx context.Context, b models.Booking) error {
	return d.bookingEvent(ctx, TypeBookingConfirmed, "confirmed", b)
}

func (d *AsynqDispatcher) BookingCancelled(ctx context.Context, b models.Booking) error {
	return d.bookingEvent(ctx, TypeBookingCancelled, "cancelled", b)
}

func (d *AsynqDispatcher) RefundRequested(ctx context.Context, b models.Booking) error {
	task, opts, err := NewRefundTask(models.RefundPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Amount:     b.TotalPrice,
	})
	if err != nil {
		return fmt.Errorf("building refund task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueueing refund task: %w", err)
	}
	return nil
}

func (d *AsynqDispatcher) ReminderAt(ctx context.Context, b models.Booking, fireAt time.Time) error {
	task, opts, err := NewReminderTask(models.ReminderPayload{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		Datetime:   b.Start.Format(time.RFC3339),
	}, fireAt)
	if err != nil {
		return fmt.Errorf("building reminder task: %w", err)
	}
	if _, err := d.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("enqueueing reminder task: %w", err)
	}
	return nil
}
