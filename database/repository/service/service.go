package serviceRepo

import (
	"context"

	"glowbook/models"
)

// ServiceRepository defines methods for service data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Service, error)
	// ListByVendor retrieves all services owned by a vendor.
	ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error)
}
