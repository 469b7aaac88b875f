package handlers

import (
	"errors"
	"net/http"
	"strings"

	"pagex/middleware"
	"pagex/models"
	"pagex/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler owns the subscriber-facing catalog endpoints.
type CatalogHandler struct {
	Service catalog.CatalogService
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// parseGrantFilter reads the optional filter set off the query string.
// artForms may be repeated or comma-separated.
func parseGrantFilter(c *gin.Context) models.GrantFilter {
	filter := models.GrantFilter{
		Search:          strings.TrimSpace(c.Query("search")),
		Location:        strings.TrimSpace(c.Query("location")),
		ExperienceLevel: strings.TrimSpace(c.Query("experienceLevel")),
	}
	for _, raw := range c.QueryArray("artForms") {
		for _, form := range strings.Split(raw, ",") {
			if form = strings.TrimSpace(form); form != "" {
				filter.ArtForms = append(filter.ArtForms, form)
			}
		}
	}
	return filter
}

// ListGrantsHandler returns the filtered, sorted catalog along with the
// caller's saved-grant ids so the view can mark bookmarks without caching.
func (h *CatalogHandler) ListGrantsHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filter := parseGrantFilter(c)
	sort := models.GrantSort(c.DefaultQuery("sort", string(models.SortByDeadline)))

	grants, err := h.Service.ListGrants(filter, sort)
	if err != nil {
		logger.Error("Grant listing failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load grants, please retry"})
		return
	}

	savedIDs, err := h.Service.SavedGrantIDs(session.UserID)
	if err != nil {
		logger.Warn("Failed to load saved grant ids", zap.String("userID", session.UserID), zap.Error(err))
		savedIDs = nil
	}

	c.JSON(http.StatusOK, gin.H{"grants": grants, "savedGrantIds": savedIDs})
}

// GetGrantHandler returns a single grant with its saved flag for the caller.
func (h *CatalogHandler) GetGrantHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grantID := c.Param("id")
	grant, err := h.Service.GetGrant(grantID)
	if err != nil {
		var nf catalog.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		logger.Error("Grant fetch failed", zap.String("grantID", grantID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load grant, please retry"})
		return
	}

	saved := false
	if ids, err := h.Service.SavedGrantIDs(session.UserID); err == nil {
		for _, id := range ids {
			if id == grantID {
				saved = true
				break
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"grant": grant, "saved": saved})
}

// ListSavedHandler returns the caller's bookmarks joined with grant records.
func (h *CatalogHandler) ListSavedHandler(c *gin.Context) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.Service.ListSaved(session.UserID)
	if err != nil {
		logger.Error("Saved listing failed", zap.String("userID", session.UserID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load saved grants, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved": entries})
}

// SaveGrantHandler bookmarks a grant. Repeats are no-ops.
func (h *CatalogHandler) SaveGrantHandler(c *gin.Context) {
	h.toggleSaved(c, true)
}

// UnsaveGrantHandler removes a bookmark. Unsaving a never-saved grant succeeds.
func (h *CatalogHandler) UnsaveGrantHandler(c *gin.Context) {
	h.toggleSaved(c, false)
}

func (h *CatalogHandler) toggleSaved(c *gin.Context, save bool) {
	logger := getLogger(c)

	session, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grantID := c.Param("id")
	var err error
	if save {
		err = h.Service.SaveGrant(session.UserID, grantID)
	} else {
		err = h.Service.UnsaveGrant(session.UserID, grantID)
	}
	if err != nil {
		var nf catalog.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		logger.Error("Save toggle failed",
			zap.String("userID", session.UserID), zap.String("grantID", grantID),
			zap.Bool("save", save), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update saved grants, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": save})
}
