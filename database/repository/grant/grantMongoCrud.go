package grantRepo

import (
	"fmt"
	"time"

	"pagex/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a grant by its unique ID.
func (r *MongoGrantRepo) GetByID(id string) (*models.Grant, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var grant models.Grant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&grant); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch grant with id %s: %w", id, err)
	}
	return &grant, nil
}

// Create inserts a new grant document.
func (r *MongoGrantRepo) Create(grant *models.Grant) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	grant.CreatedAt = now
	grant.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, grant)
	if err != nil {
		return fmt.Errorf("failed to create grant: %w", err)
	}
	return nil
}

// Update replaces an existing grant document keyed by id.
func (r *MongoGrantRepo) Update(grant *models.Grant) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	grant.UpdatedAt = time.Now()
	filter := bson.M{"id": grant.ID}
	update := bson.M{"$set": grant}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update grant with id %s: %w", grant.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("grant with id %s not found", grant.ID)
	}
	return nil
}

// Delete removes a grant document by its ID.
func (r *MongoGrantRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete grant with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("grant with id %s not found", id)
	}
	return nil
}

// InsertMany writes a pre-validated import batch in one ordered insert.
// Callers validate the whole batch first; nothing here is written piecemeal.
func (r *MongoGrantRepo) InsertMany(grants []models.Grant) error {
	if len(grants) == 0 {
		return nil
	}

	ctx, cancel := newContext(30 * time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(grants))
	for i := range grants {
		grants[i].CreatedAt = now
		grants[i].UpdatedAt = now
		docs = append(docs, grants[i])
	}

	_, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to insert %d grants: %w", len(grants), err)
	}
	return nil
}
