package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"glowbook/config"
	bookingRepo "glowbook/database/repository/booking"
	"glowbook/models"
	"glowbook/services/notification"
	"glowbook/services/payment"
	"glowbook/services/tasks"
	"glowbook/utils"
)

// InitBookingWorker runs the async worker in background. It processes the
// best-effort side effects of the booking flow: confirmation and
// cancellation pushes, refund initiation and reminders. A worker failure
// never touches the bookings already committed.
func InitBookingWorker(
	notifSvc notification.NotificationService,
	refunds payment.RefundHandler,
	bookings bookingRepo.BookingRepository,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmed, handleBookingEvent(notifSvc))
	mux.HandleFunc(tasks.TypeBookingCancelled, handleBookingEvent(notifSvc))
	mux.HandleFunc(tasks.TypeRefundInitiate, handleRefundTask(refunds, bookings))
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, bookings))

	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleBookingEvent(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingEventPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid booking event payload", zap.Error(err))
			return err
		}

		var customerTitle, vendorTitle string
		switch p.Event {
		case "confirmed":
			customerTitle = "Booking received"
			vendorTitle = "New booking"
		case "cancelled":
			customerTitle = "Booking cancelled"
			vendorTitle = "Booking cancelled"
		default:
			utils.GetLogger().Warn("unknown booking event", zap.String("event", p.Event))
			return nil
		}

		data := map[string]string{
			"bookingId": p.BookingID,
			"datetime":  p.Datetime,
			"event":     p.Event,
		}
		body := "Appointment at " + p.Datetime

		// Each push is attempted independently so a missing FCM token on one
		// side does not starve the other.
		if err := notifSvc.SendCustomerPush(ctx, p.CustomerID, customerTitle, body, data); err != nil {
			utils.GetLogger().Warn("customer push failed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
		}
		if err := notifSvc.SendVendorPush(ctx, p.VendorID, vendorTitle, body, data); err != nil {
			utils.GetLogger().Warn("vendor push failed",
				zap.String("bookingID", p.BookingID), zap.Error(err))
		}
		return nil
	}
}

func handleRefundTask(refunds payment.RefundHandler, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.RefundPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid refund payload", zap.Error(err))
			return err
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		switch b.PaymentStatus {
		case models.PaymentStatusRefundPending, models.PaymentStatusRefundFailed:
			// refund_failed stays eligible so queue retries re-attempt the
			// refund; only a completed refund short-circuits.
		default:
			return nil
		}

		if _, err := refunds.InitiateRefund(ctx, b.PaymentIntentID, p.Amount); err != nil {
			// refund_failed marks the booking for reconciliation; it clears
			// to refunded when a later attempt succeeds.
			if uerr := bookings.UpdatePaymentStatus(ctx, p.BookingID, models.PaymentStatusRefundFailed); uerr != nil {
				utils.GetLogger().Error("failed to mark refund_failed",
					zap.String("bookingID", p.BookingID), zap.Error(uerr))
			}
			return err
		}
		return bookings.UpdatePaymentStatus(ctx, p.BookingID, models.PaymentStatusRefunded)
	}
}

func handleReminderTask(notifSvc notification.NotificationService, bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("invalid reminder payload", zap.Error(err))
			return err
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		// Cancelled bookings and duplicate deliveries are skipped.
		if b.ReminderSent || b.IsFinalized() {
			return nil
		}

		data := map[string]string{"bookingId": p.BookingID, "datetime": p.Datetime}
		if err := notifSvc.SendCustomerPush(ctx, p.CustomerID, "Upcoming appointment", "Appointment at "+p.Datetime, data); err != nil {
			return err
		}
		return bookings.MarkReminderSent(ctx, p.BookingID)
	}
}
