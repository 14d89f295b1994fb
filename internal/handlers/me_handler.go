package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateMeRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Headline        *string `json:"headline"`
	Bio             *string `json:"bio"`
	City            *string `json:"city"`
	HourlyRateCents *int64  `json:"hourly_rate_cents"`
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "user not found")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Headline != nil {
		user.Headline = *req.Headline
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.HourlyRateCents != nil {
		user.HourlyRateCents = *req.HourlyRateCents
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}
