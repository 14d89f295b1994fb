package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/httpresp"
	"github.com/amizade-app/companion-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// CompanionHandler serves the public marketplace surface: browsing
// companions and their offerings.
type CompanionHandler struct {
	db *gorm.DB
}

func NewCompanionHandler(db *gorm.DB) *CompanionHandler {
	return &CompanionHandler{db: db}
}

type companionCard struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Headline        string `json:"headline"`
	City            string `json:"city"`
	HourlyRateCents int64  `json:"hourly_rate_cents"`
	PhotoURL        string `json:"photo_url"`
	Verified        bool   `json:"verified"`
}

func (h *CompanionHandler) List(c *gin.Context) {
	city := c.Query("city")

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := h.db.Model(&models.User{}).
		Where("role = ? AND active = ?", models.RoleCompanion, true)

	if city != "" {
		q = q.Where("city = ?", city)
	}

	var users []models.User
	if err := q.
		Order("verified DESC, name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		httperr.Internal(c, "companion_list_failed", "could not list companions")
		return
	}

	cards := make([]companionCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, companionCard{
			ID:              u.ID,
			Name:            u.Name,
			Headline:        u.Headline,
			City:            u.City,
			HourlyRateCents: u.HourlyRateCents,
			PhotoURL:        u.PhotoURL,
			Verified:        u.Verified,
		})
	}

	httpresp.List(c, cards)
}

func (h *CompanionHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "companion id must be numeric")
		return
	}

	var user models.User
	if err := h.db.
		Where("id = ? AND role = ? AND active = ?", id, models.RoleCompanion, true).
		First(&user).Error; err != nil {
		httperr.NotFound(c, "companion_not_found", "companion not found")
		return
	}

	var offerings []models.ServiceOffering
	if err := h.db.
		Where("companion_id = ? AND active = ?", user.ID, true).
		Order("price_cents ASC").
		Find(&offerings).Error; err != nil {
		httperr.Internal(c, "offering_list_failed", "could not load offerings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companion": companionCard{
			ID:              user.ID,
			Name:            user.Name,
			Headline:        user.Headline,
			City:            user.City,
			HourlyRateCents: user.HourlyRateCents,
			PhotoURL:        user.PhotoURL,
			Verified:        user.Verified,
		},
		"bio":       user.Bio,
		"offerings": offerings,
	})
}
