package catalog

import (
	"pagex/models"
	"pagex/utils"

	"go.uber.org/zap"
)

// ListGrants returns grants matching the filter in the given order. A failed
// query surfaces as a retryable StoreError and never disturbs the caller's
// filter state.
func (s *DefaultCatalogService) ListGrants(filter models.GrantFilter, sort models.GrantSort) ([]models.Grant, error) {
	if sort == "" {
		sort = models.SortByDeadline
	}

	grants, err := s.Grants.List(filter, sort)
	if err != nil {
		utils.GetLogger().Error("ListGrants: store query failed", zap.Error(err))
		return nil, StoreError{Err: err}
	}
	return grants, nil
}

// GetGrant retrieves a single grant by id.
func (s *DefaultCatalogService) GetGrant(id string) (*models.Grant, error) {
	grant, err := s.Grants.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetGrant: store query failed", zap.String("grantID", id), zap.Error(err))
		return nil, StoreError{Err: err}
	}
	if grant == nil {
		return nil, NotFoundError{GrantID: id}
	}
	return grant, nil
}
