package customerRepo

import (
	"context"

	"glowbook/models"
)

// CustomerRepository defines methods for customer data access.
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}
