package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"glowbook/utils"
)

// autoAssign selects a staff member for a vendor/service/time when the
// customer expressed no specific preference. Candidates are the vendor's
// active staff qualified for the service, iterated in creation order;
// the first one who is both schedule-available and conflict-free wins.
// No load balancing or fairness ranking, first fit is the policy.
//
// Returns hadCandidates=false when the vendor runs no qualified staff at
// all, in which case the booking proceeds unassigned.
func (s *DefaultBookingService) autoAssign(ctx context.Context, vendorID, serviceID string, start time.Time, duration time.Duration) (staffID string, hadCandidates bool, err error) {
	candidates, err := s.StaffRepo.ListCandidates(ctx, vendorID, serviceID)
	if err != nil {
		return "", false, classifyRepoError(err, CodeVendorNotFound)
	}
	if len(candidates) == 0 {
		return "", false, nil
	}

	end := start.Add(duration)
	for i := range candidates {
		st := &candidates[i]
		if !fitsSchedule(st, start, duration) {
			continue
		}
		n, err := s.BookingRepo.CountOverlapping(ctx, st.ID, start, end)
		if err != nil {
			return "", true, classifyRepoError(err, CodeStaffNotFound)
		}
		if n > 0 {
			continue
		}
		utils.GetLogger().Debug("auto-assigned staff",
			zap.String("staffID", st.ID),
			zap.String("vendorID", vendorID),
			zap.Time("start", start))
		return st.ID, true, nil
	}
	return "", true, nil
}
