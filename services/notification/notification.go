package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	customerRepo "glowbook/database/repository/customer"
	vendorRepo "glowbook/database/repository/vendor"
	"glowbook/utils"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendCustomerPush(ctx context.Context, customerID, title, body string, data map[string]string) error
	SendVendorPush(ctx context.Context, vendorID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Customers customerRepo.CustomerRepository
	Vendors   vendorRepo.VendorRepository
}

func NewDefaultNotificationService(customers customerRepo.CustomerRepository, vendors vendorRepo.VendorRepository) (*DefaultNotificationService, error) {
	if customers == nil || vendors == nil {
		return nil, fmt.Errorf("notification service initialization error: customer or vendor repository is nil")
	}
	return &DefaultNotificationService{Customers: customers, Vendors: vendors}, nil
}

// SendCustomerPush looks up a customer's FCM token and sends a push.
func (s *DefaultNotificationService) SendCustomerPush(ctx context.Context, customerID, title, body string, data map[string]string) error {
	cust, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("SendCustomerPush: could not find customer %s: %w", customerID, err)
	}
	if cust.FCMToken == "" {
		return fmt.Errorf("SendCustomerPush: customer %s has no FCM token", customerID)
	}
	return send(ctx, cust.FCMToken, title, body, data)
}

// SendVendorPush looks up a vendor's FCM token and sends a push.
func (s *DefaultNotificationService) SendVendorPush(ctx context.Context, vendorID, title, body string, data map[string]string) error {
	v, err := s.Vendors.GetByID(ctx, vendorID)
	if err != nil {
		return fmt.Errorf("SendVendorPush: could not find vendor %s: %w", vendorID, err)
	}
	if v.FCMToken == "" {
		return fmt.Errorf("SendVendorPush: vendor %s has no FCM token", vendorID)
	}
	return send(ctx, v.FCMToken, title, body, data)
}

func send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
