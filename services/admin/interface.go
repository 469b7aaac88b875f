package admin

import (
	grantRepo "pagex/database/repository/grant"
	savedRepo "pagex/database/repository/saved"
	"pagex/models"
	"pagex/services/user"
)

// AdminService exposes the privileged curation surface over the grant catalog.
type AdminService interface {
	// ListGrants returns the whole catalog, newest first, for the curation table.
	ListGrants() ([]models.Grant, error)
	// CreateGrant validates and inserts a new grant.
	CreateGrant(input models.GrantInput) (*models.Grant, error)
	// UpdateGrant validates and fully replaces the editable fields of a grant.
	UpdateGrant(id string, input models.GrantInput) (*models.Grant, error)
	// DeleteGrant removes a grant and any bookmarks pointing at it.
	DeleteGrant(id string) error
	// ImportGrants parses an uploaded file, validates every record up front
	// and writes all of them or none. Returns the number imported.
	ImportGrants(filename string, data []byte) (int, error)
	// ListUsers returns all accounts for the admin dashboard.
	ListUsers() ([]models.User, error)
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Grants grantRepo.GrantRepository
	Saved  savedRepo.SavedGrantRepository
	Users  user.UserService
}
