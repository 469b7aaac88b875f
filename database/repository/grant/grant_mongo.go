package grantRepo

import (
	"context"
	"fmt"
	"time"

	"pagex/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGrantRepo implements GrantRepository using MongoDB.
type MongoGrantRepo struct {
	coll *mongo.Collection
}

// NewMongoGrantRepo creates a new instance of GrantRepository using MongoDB.
func NewMongoGrantRepo() GrantRepository {
	coll := database.MongoClient.Database("pagex").Collection("grants")
	repo := &MongoGrantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields used by listing and curation.
func (r *MongoGrantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "applicationDeadline", Value: 1}}},
		{Keys: bson.D{{Key: "artForms", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
