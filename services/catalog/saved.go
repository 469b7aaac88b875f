package catalog

import (
	"pagex/models"
	"pagex/utils"

	"go.uber.org/zap"
)

// SaveGrant bookmarks a grant for the user. The grant must exist; repeating
// the call is a no-op thanks to the store's unique pair constraint.
func (s *DefaultCatalogService) SaveGrant(userID, grantID string) error {
	grant, err := s.Grants.GetByID(grantID)
	if err != nil {
		utils.GetLogger().Error("SaveGrant: store query failed", zap.String("grantID", grantID), zap.Error(err))
		return StoreError{Err: err}
	}
	if grant == nil {
		return NotFoundError{GrantID: grantID}
	}

	if err := s.Saved.Save(userID, grantID); err != nil {
		utils.GetLogger().Error("SaveGrant: save failed",
			zap.String("userID", userID), zap.String("grantID", grantID), zap.Error(err))
		return StoreError{Err: err}
	}
	return nil
}

// UnsaveGrant removes the bookmark. Unsaving a grant that was never saved
// succeeds without effect.
func (s *DefaultCatalogService) UnsaveGrant(userID, grantID string) error {
	if err := s.Saved.Unsave(userID, grantID); err != nil {
		utils.GetLogger().Error("UnsaveGrant: unsave failed",
			zap.String("userID", userID), zap.String("grantID", grantID), zap.Error(err))
		return StoreError{Err: err}
	}
	return nil
}

// ListSaved returns the user's bookmarks joined with their grant records.
func (s *DefaultCatalogService) ListSaved(userID string) ([]models.SavedGrantEntry, error) {
	entries, err := s.Saved.ListByUser(userID)
	if err != nil {
		utils.GetLogger().Error("ListSaved: store query failed", zap.String("userID", userID), zap.Error(err))
		return nil, StoreError{Err: err}
	}
	return entries, nil
}

// SavedGrantIDs re-fetches the saved set from the store of record so a view
// never renders stale optimistic toggle state.
func (s *DefaultCatalogService) SavedGrantIDs(userID string) ([]string, error) {
	ids, err := s.Saved.SavedGrantIDs(userID)
	if err != nil {
		utils.GetLogger().Error("SavedGrantIDs: store query failed", zap.String("userID", userID), zap.Error(err))
		return nil, StoreError{Err: err}
	}
	return ids, nil
}
