package serviceRepo

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
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

// NewMongoServiceRepo constructs a new instance of MongoServiceRepo.
func NewMongoServiceRepo() ServiceRepository {
	return &MongoServiceRepo{coll: database.DB().Collection("services")}
}

func (repo *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("service %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching service %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	return &svc, nil
}

func (repo *MongoServiceRepo) ListByVendor(ctx context.Context, vendorID string) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"vendor_id": vendorID})
	if err != nil {
		return nil, fmt.Errorf("listing services for vendor %s: %w: %v", vendorID, repository.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decoding services for vendor %s: %w", vendorID, err)
	}
	return services, nil
}
