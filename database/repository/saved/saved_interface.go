package savedRepo

import "pagex/models"

// SavedGrantRepository defines methods for the user/grant bookmark relation.
type SavedGrantRepository interface {
	// Save records the bookmark if absent. Saving an already saved grant is a no-op.
	Save(userID, grantID string) error
	// Unsave removes the bookmark if present. Unsaving a non-saved grant is a no-op.
	Unsave(userID, grantID string) error
	// IsSaved reports whether the bookmark exists.
	IsSaved(userID, grantID string) (bool, error)
	// SavedGrantIDs returns the set of grant IDs the user has saved.
	SavedGrantIDs(userID string) ([]string, error)
	// ListByUser returns the user's bookmarks joined with their grant records,
	// most recently saved first.
	ListByUser(userID string) ([]models.SavedGrantEntry, error)
	// DeleteByGrant removes every bookmark pointing at a grant (curation delete).
	DeleteByGrant(grantID string) error
}
