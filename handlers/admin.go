package handlers

import (
	"errors"
	"io"
	"net/http"

	"pagex/models"
	"pagex/services/admin"
	"pagex/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxImportBody caps uploaded catalog files at 10 MiB.
const maxImportBody = 10 << 20

// AdminHandler owns the privileged curation endpoints.
type AdminHandler struct {
	Service admin.AdminService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListGrantsHandler returns the entire catalog, newest first.
func (h *AdminHandler) ListGrantsHandler(c *gin.Context) {
	logger := getLogger(c)

	grants, err := h.Service.ListGrants()
	if err != nil {
		logger.Error("Admin grant listing failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load grants, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grants": grants})
}

// CreateGrantHandler validates and inserts a new grant.
func (h *AdminHandler) CreateGrantHandler(c *gin.Context) {
	logger := getLogger(c)

	var input models.GrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant payload"})
		return
	}

	grant, err := h.Service.CreateGrant(input)
	if err != nil {
		var ve admin.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Grant validation failed", "fields": ve.Fields})
			return
		}
		logger.Error("Grant creation failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to create grant, please retry"})
		return
	}

	logger.Info("grant created", zap.String("grantID", grant.ID), zap.String("title", grant.Title))
	c.JSON(http.StatusCreated, gin.H{"grant": grant})
}

// UpdateGrantHandler fully replaces the editable fields of a grant.
func (h *AdminHandler) UpdateGrantHandler(c *gin.Context) {
	logger := getLogger(c)
	grantID := c.Param("id")

	var input models.GrantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant payload"})
		return
	}

	grant, err := h.Service.UpdateGrant(grantID, input)
	if err != nil {
		var ve admin.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Grant validation failed", "fields": ve.Fields})
			return
		}
		var nf catalog.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		logger.Error("Grant update failed", zap.String("grantID", grantID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update grant, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"grant": grant})
}

// DeleteGrantHandler removes a grant and every bookmark pointing at it.
func (h *AdminHandler) DeleteGrantHandler(c *gin.Context) {
	logger := getLogger(c)
	grantID := c.Param("id")

	if err := h.Service.DeleteGrant(grantID); err != nil {
		var nf catalog.NotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Grant not found"})
			return
		}
		logger.Error("Grant deletion failed", zap.String("grantID", grantID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to delete grant, please retry"})
		return
	}

	logger.Info("grant deleted", zap.String("grantID", grantID))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ImportGrantsHandler accepts a multipart upload under the "file" field and
// imports the whole batch atomically. Any invalid record rejects the file.
func (h *AdminHandler) ImportGrantsHandler(c *gin.Context) {
	logger := getLogger(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Upload a file under the 'file' form field"})
		return
	}
	if fileHeader.Size > maxImportBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Import file exceeds the 10 MiB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Import upload open failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBody))
	if err != nil {
		logger.Error("Import upload read failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	count, err := h.Service.ImportGrants(fileHeader.Filename, data)
	if err != nil {
		var ive admin.ImportValidationError
		if errors.As(err, &ive) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":    "Import rejected, no grants were written",
				"imported": 0,
				"errors":   ive.Errors,
			})
			return
		}
		logger.Error("Grant import failed", zap.String("file", fileHeader.Filename), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imported": count})
}

// ListUsersHandler returns every account for the admin dashboard.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	logger := getLogger(c)

	users, err := h.Service.ListUsers()
	if err != nil {
		logger.Error("Admin user listing failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to load users, please retry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
