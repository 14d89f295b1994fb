package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/storage"
)

const maxPhotoUploadBytes = 8 << 20

type PhotoHandler struct {
	db    *gorm.DB
	store *storage.PhotoStore
}

func NewPhotoHandler(db *gorm.DB, store *storage.PhotoStore) *PhotoHandler {
	return &PhotoHandler{db: db, store: store}
}

// Upload replaces the companion's profile photo. The file is re-encoded
// server side, so the original format only needs to be decodable.
func (h *PhotoHandler) Upload(c *gin.Context) {
	if !h.store.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "storage_disabled", "photo storage is not configured")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "missing photo file")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "photo exceeds the 8MB limit")
		return
	}

	url, err := h.store.SaveProfilePhoto(c.Request.Context(), userID, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", err.Error())
		return
	}

	if err := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("photo_url", url).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not save photo URL")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}
