package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"glowbook/database/repository"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CreateIfNoConflict is the final atomic gate of booking creation. The
// overlap count and the insert run inside one Mongo session transaction, so
// two concurrent requests for the same staff member and overlapping window
// serialize: exactly one insert commits and the other observes the conflict.
// Unassigned bookings skip the count but still insert transactionally.
func (repo *MongoBookingRepo) CreateIfNoConflict(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w: %v", repository.ErrUnavailable, err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if booking.StaffID != "" {
			n, err := repo.coll.CountDocuments(sc, overlapFilter(booking.StaffID, booking.Start, booking.End))
			if err != nil {
				return fmt.Errorf("conflict re-check failed: %w: %v", repository.ErrUnavailable, err)
			}
			if n > 0 {
				return fmt.Errorf("staff %s already booked in [%s, %s): %w",
					booking.StaffID, booking.Start.Format(time.RFC3339), booking.End.Format(time.RFC3339),
					repository.ErrConflict)
			}
		}
		if _, err := repo.coll.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w: %v", repository.ErrUnavailable, err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return fmt.Errorf("%w: %v", repository.ErrUnavailable, err)
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return fmt.Errorf("commit failed: %w: %v", repository.ErrUnavailable, err)
		}
		return nil
	}); err != nil {
		return err
	}

	return nil
}
