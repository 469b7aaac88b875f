package catalog

import (
	grantRepo "pagex/database/repository/grant"
	savedRepo "pagex/database/repository/saved"
	"pagex/models"
)

// CatalogService presents the queryable grant catalog scoped to the current
// identity, and manages the save/unsave relation.
type CatalogService interface {
	// ListGrants returns grants matching the filter in the given order.
	ListGrants(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error)
	// GetGrant retrieves a single grant; a missing id is a NotFoundError.
	GetGrant(id string) (*models.Grant, error)
	// ListSaved returns the user's bookmarks joined with grant records.
	ListSaved(userID string) ([]models.SavedGrantEntry, error)
	// SavedGrantIDs returns the set of grant ids the user has saved, read
	// fresh from the store of record on every call.
	SavedGrantIDs(userID string) ([]string, error)
	// SaveGrant bookmarks a grant for the user. Idempotent.
	SaveGrant(userID, grantID string) error
	// UnsaveGrant removes the bookmark. Idempotent; a never-saved grant is a no-op.
	UnsaveGrant(userID, grantID string) error
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Grants grantRepo.GrantRepository
	Saved  savedRepo.SavedGrantRepository
}
