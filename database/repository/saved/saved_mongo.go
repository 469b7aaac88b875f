package savedRepo

import (
	"context"
	"fmt"
	"time"

	"pagex/database"
	"pagex/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSavedGrantRepo implements SavedGrantRepository using MongoDB.
type MongoSavedGrantRepo struct {
	coll *mongo.Collection
}

// NewMongoSavedGrantRepo creates a new instance of SavedGrantRepository using MongoDB.
func NewMongoSavedGrantRepo() SavedGrantRepository {
	coll := database.MongoClient.Database("pagex").Collection("saved_grants")
	repo := &MongoSavedGrantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the unique compound index that enforces the
// at-most-one-bookmark-per-pair invariant.
func (r *MongoSavedGrantRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "grantId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "grantId", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Save records the bookmark via an upsert keyed on the unique pair, so a
// repeated save changes nothing and never errors.
func (r *MongoSavedGrantRepo) Save(userID, grantID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "grantId": grantID}
	update := bson.M{"$setOnInsert": bson.M{
		"id":        uuid.New().String(),
		"userId":    userID,
		"grantId":   grantID,
		"createdAt": time.Now(),
	}}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save grant %s for user %s: %w", grantID, userID, err)
	}
	return nil
}

// Unsave removes the bookmark. A zero delete count is success: unsaving a
// grant that was never saved is a no-op.
func (r *MongoSavedGrantRepo) Unsave(userID, grantID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"userId": userID, "grantId": grantID}
	if _, err := r.coll.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to unsave grant %s for user %s: %w", grantID, userID, err)
	}
	return nil
}

// IsSaved reports whether the bookmark exists.
func (r *MongoSavedGrantRepo) IsSaved(userID, grantID string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "grantId": grantID})
	if err != nil {
		return false, fmt.Errorf("failed to check saved grant: %w", err)
	}
	return count > 0, nil
}

// SavedGrantIDs returns the set of grant IDs the user has saved.
func (r *MongoSavedGrantRepo) SavedGrantIDs(userID string) ([]string, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"grantId": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list saved grant ids: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.SavedGrant
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode saved grant ids: %w", err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.GrantID)
	}
	return ids, nil
}

// ListByUser joins the user's bookmarks with their grant records.
func (r *MongoSavedGrantRepo) ListByUser(userID string) ([]models.SavedGrantEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"userId": userID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "grants",
			"localField":   "grantId",
			"foreignField": "id",
			"as":           "grant",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$grant",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved grants for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var entries []models.SavedGrantEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode saved grants: %w", err)
	}
	return entries, nil
}

// DeleteByGrant removes every bookmark pointing at a grant.
func (r *MongoSavedGrantRepo) DeleteByGrant(grantID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"grantId": grantID}); err != nil {
		return fmt.Errorf("failed to delete bookmarks for grant %s: %w", grantID, err)
	}
	return nil
}
