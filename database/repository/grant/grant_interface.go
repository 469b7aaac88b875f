package grantRepo

import "pagex/models"

// GrantRepository defines methods for grant catalog data access.
type GrantRepository interface {
	// List retrieves grants matching the filter, ordered by the sort key.
	List(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error)
	// GetByID retrieves a grant by its unique ID. Returns (nil, nil) when absent.
	GetByID(id string) (*models.Grant, error)
	// Create inserts a new grant record.
	Create(grant *models.Grant) error
	// Update replaces the editable fields of an existing grant record.
	Update(grant *models.Grant) error
	// Delete removes a grant record by its ID.
	Delete(id string) error
	// InsertMany writes a pre-validated batch of grants in one ordered insert.
	InsertMany(grants []models.Grant) error
}
