package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"glowbook/models"
)

// Task type names routed by the worker mux.
const (
	TypeBookingConfirmed = "booking:confirmed"
	TypeBookingCancelled = "booking:cancelled"
	TypeRefundInitiate   = "refund:initiate"
	TypeSendReminder     = "reminder:send"
)

func NewBookingEventTask(taskType string, payload models.BookingEventPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, b), nil
}

func NewRefundTask(payload models.RefundPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	// Refund initiation retries a few times before manual reconciliation.
	opts := []asynq.Option{asynq.MaxRetry(5)}
	return asynq.NewTask(TypeRefundInitiate, b), opts, nil
}

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}
	return asynq.NewTask(TypeSendReminder, b), opts, nil
}
