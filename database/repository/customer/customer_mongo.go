package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new instance of MongoCustomerRepo.
func NewMongoCustomerRepo() CustomerRepository {
	return &MongoCustomerRepo{coll: database.DB().Collection("customers")}
}

func (repo *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var cust models.Customer
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cust); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("customer %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching customer %s: %w: %v", id, repository.ErrUnavailable, err)
	}
	return &cust, nil
}
