package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"glowbook/database"
	"glowbook/database/repository"
	"glowbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo and
// ensures the indexes the conflict query relies on.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.DB().Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		panic(fmt.Sprintf("booking repo: failed to ensure indexes: %v", err))
	}
	return repo
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching booking %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	return &b, nil
}

func (repo *MongoBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"customer_id": customerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for customer %s: %w: %v", customerID, repository.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decoding bookings for customer %s: %w", customerID, err)
	}
	return bookings, nil
}

// overlapFilter is the half-open interval rule: an existing booking
// [s, e) overlaps the candidate [start, end) iff s < end AND e > start.
func overlapFilter(staffID string, start, end time.Time) bson.M {
	return bson.M{
		"staff_id": staffID,
		"status":   bson.M{"$in": models.ActiveBookingStatuses},
		"start":    bson.M{"$lt": end},
		"end":      bson.M{"$gt": start},
	}
}

func (repo *MongoBookingRepo) CountOverlapping(ctx context.Context, staffID string, start, end time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, overlapFilter(staffID, start, end))
	if err != nil {
		return 0, fmt.Errorf("counting overlaps for staff %s: %w: %v", staffID, repository.ErrUnavailable, err)
	}
	return n, nil
}

func (repo *MongoBookingRepo) ListActiveForStaffRange(ctx context.Context, staffID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctx, overlapFilter(staffID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for staff %s: %w: %v", staffID, repository.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decoding bookings for staff %s: %w", staffID, err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) Cancel(ctx context.Context, id, cancelledBy string, at time.Time, paymentStatus string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Filter on non-finalized statuses so a concurrent cancel or completion
	// cannot be overwritten.
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": models.ActiveBookingStatuses},
	}
	update := bson.M{
		"$set": bson.M{
			"status":         models.BookingStatusCancelled,
			"cancelled_at":   at,
			"cancelled_by":   cancelledBy,
			"payment_status": paymentStatus,
			"updated_at":     at,
		},
	}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("cancelling booking %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrStale)
	}
	return nil
}

func (repo *MongoBookingRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment_status": status, "updated_at": time.Now().UTC()}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("updating payment status for booking %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (repo *MongoBookingRepo) MarkReminderSent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"reminder_sent": true, "updated_at": time.Now().UTC()}}
	if _, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("marking reminder sent for booking %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	return nil
}
