package staffRepo

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

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

// NewMongoStaffRepo constructs a new instance of MongoStaffRepo.
func NewMongoStaffRepo() StaffRepository {
	return &MongoStaffRepo{coll: database.DB().Collection("staff")}
}

func (repo *MongoStaffRepo) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var st models.Staff
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&st); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("staff %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching staff %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	return &st, nil
}

func (repo *MongoStaffRepo) ListCandidates(ctx context.Context, vendorID, serviceID string) ([]models.Staff, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"vendor_id": vendorID,
		"active":    true,
		"$or": []bson.M{
			{"service_ids": bson.M{"$exists": false}},
			{"service_ids": bson.M{"$size": 0}},
			{"service_ids": serviceID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("listing staff for vendor %s: %w: %v", vendorID, repository.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var staff []models.Staff
	if err := cursor.All(ctx, &staff); err != nil {
		return nil, fmt.Errorf("decoding staff for vendor %s: %w", vendorID, err)
	}
	return staff, nil
}
