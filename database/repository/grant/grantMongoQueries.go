package grantRepo

import (
	"fmt"
	"regexp"
	"time"

	"pagex/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// List retrieves grants matching the filter, ordered by the sort key.
func (r *MongoGrantRepo) List(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := buildGrantPipeline(filter, sort)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("grant listing query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var grants []models.Grant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, fmt.Errorf("failed to decode grants: %w", err)
	}
	return grants, nil
}

// buildGrantPipeline compiles a filter set and sort key into an aggregation
// pipeline. Filters are ANDed; the free-text search fans out as an OR across
// title, description and organization.
func buildGrantPipeline(filter models.GrantFilter, sort models.GrantSort) mongo.Pipeline {
	var pipeline mongo.Pipeline

	if match := buildGrantMatch(filter); len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	switch sort {
	case models.SortByTitle:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "title", Value: 1},
		}}})
	case models.SortByRecent:
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
		}}})
	default:
		// Deadline sort: Mongo orders missing values first on an ascending
		// sort, so rank dated grants ahead of undated ones explicitly.
		pipeline = append(pipeline, bson.D{
			{Key: "$addFields", Value: bson.M{
				"deadlineMissing": bson.M{"$cond": bson.A{
					bson.M{"$ifNull": bson.A{"$applicationDeadline", false}},
					0,
					1,
				}},
			}},
		})
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "deadlineMissing", Value: 1},
			{Key: "applicationDeadline", Value: 1},
			{Key: "title", Value: 1},
		}}})
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: "deadlineMissing"}})
	}

	return pipeline
}

// buildGrantMatch compiles the optional filter criteria into a $match document.
func buildGrantMatch(filter models.GrantFilter) bson.M {
	match := bson.M{}

	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		match["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": pattern, "$options": "i"}},
			bson.M{"organization": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if len(filter.ArtForms) > 0 {
		// Membership test: the grant must carry at least one requested form.
		match["artForms"] = bson.M{"$in": filter.ArtForms}
	}
	if filter.Location != "" {
		match["location"] = bson.M{"$regex": regexp.QuoteMeta(filter.Location), "$options": "i"}
	}
	if filter.ExperienceLevel != "" {
		match["experienceLevel"] = filter.ExperienceLevel
	}

	return match
}
