package staffRepo

import (
	"context"

	"glowbook/models"
)

// StaffRepository defines methods for staff data access.
type StaffRepository interface {
	// GetByID retrieves a staff member by their unique ID.
	GetByID(ctx context.Context, id string) (*models.Staff, error)
	// ListCandidates retrieves the active staff of a vendor who are
	// qualified for the given service (empty service list means qualified
	// for everything), ordered by creation time so auto-assignment is
	// deterministic.
	ListCandidates(ctx context.Context, vendorID, serviceID string) ([]models.Staff, error)
}
