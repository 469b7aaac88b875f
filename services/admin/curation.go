package admin

import (
	"fmt"

	"pagex/models"
	"pagex/services/catalog"
	"pagex/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ListGrants returns the whole catalog, newest first, for the curation table.
func (s *DefaultAdminService) ListGrants() ([]models.Grant, error) {
	grants, err := s.Grants.List(models.GrantFilter{}, models.SortByRecent)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	return grants, nil
}

// CreateGrant validates and inserts a new grant. The ID is assigned here;
// the caller never supplies one.
func (s *DefaultAdminService) CreateGrant(input models.GrantInput) (*models.Grant, error) {
	if fields := validateGrantInput(input); len(fields) > 0 {
		return nil, ValidationError{Fields: fields}
	}

	grant := models.Grant{ID: uuid.New().String()}
	applyInput(&grant, input)

	if err := s.Grants.Create(&grant); err != nil {
		utils.GetLogger().Error("CreateGrant: insert failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create grant: %w", err)
	}
	return &grant, nil
}

// UpdateGrant fully replaces the editable fields of an existing grant and
// stamps a fresh updatedAt.
func (s *DefaultAdminService) UpdateGrant(id string, input models.GrantInput) (*models.Grant, error) {
	if fields := validateGrantInput(input); len(fields) > 0 {
		return nil, ValidationError{Fields: fields}
	}

	existing, err := s.Grants.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch grant: %w", err)
	}
	if existing == nil {
		return nil, catalog.NotFoundError{GrantID: id}
	}

	applyInput(existing, input)

	if err := s.Grants.Update(existing); err != nil {
		utils.GetLogger().Error("UpdateGrant: update failed", zap.String("grantID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update grant: %w", err)
	}
	return existing, nil
}

// DeleteGrant removes a grant and sweeps the bookmarks pointing at it so no
// saved listing dangles.
func (s *DefaultAdminService) DeleteGrant(id string) error {
	if err := s.Grants.Delete(id); err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}
	if err := s.Saved.DeleteByGrant(id); err != nil {
		utils.GetLogger().Warn("DeleteGrant: bookmark sweep failed", zap.String("grantID", id), zap.Error(err))
	}
	return nil
}

// ListUsers returns all accounts for the admin dashboard.
func (s *DefaultAdminService) ListUsers() ([]models.User, error) {
	return s.Users.GetAllUsers()
}
