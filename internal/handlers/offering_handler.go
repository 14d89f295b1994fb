package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/httpresp"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
)

type OfferingHandler struct {
	db *gorm.DB
}

func NewOfferingHandler(db *gorm.DB) *OfferingHandler {
	return &OfferingHandler{db: db}
}

type OfferingRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	MeetingType string `json:"meeting_type" binding:"omitempty,oneof=in_person virtual"`
	DurationMin int    `json:"duration_min" binding:"required,min=15"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=0"`
	Active      *bool  `json:"active"`
}

func (h *OfferingHandler) List(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	var offerings []models.ServiceOffering
	if err := h.db.
		Where("companion_id = ?", companionID).
		Order("created_at DESC").
		Find(&offerings).Error; err != nil {
		httperr.Internal(c, "offering_list_failed", "could not list offerings")
		return
	}

	httpresp.List(c, offerings)
}

func (h *OfferingHandler) Create(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	offering := models.ServiceOffering{
		CompanionID: companionID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		MeetingType: req.MeetingType,
		DurationMin: req.DurationMin,
		PriceCents:  req.PriceCents,
		Active:      true,
	}
	if offering.MeetingType == "" {
		offering.MeetingType = models.MeetingInPerson
	}
	if req.Active != nil {
		offering.Active = *req.Active
	}

	if err := h.db.Create(&offering).Error; err != nil {
		httperr.Internal(c, "offering_create_failed", "could not create offering")
		return
	}

	httpresp.Created(c, offering)
}

func (h *OfferingHandler) Update(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "offering id must be numeric")
		return
	}

	var offering models.ServiceOffering
	if err := h.db.
		Where("id = ? AND companion_id = ?", id, companionID).
		First(&offering).Error; err != nil {
		httperr.NotFound(c, "offering_not_found", "offering not found")
		return
	}

	var req OfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	offering.Name = req.Name
	offering.Description = req.Description
	offering.Category = req.Category
	if req.MeetingType != "" {
		offering.MeetingType = req.MeetingType
	}
	offering.DurationMin = req.DurationMin
	offering.PriceCents = req.PriceCents
	if req.Active != nil {
		offering.Active = *req.Active
	}

	if err := h.db.Save(&offering).Error; err != nil {
		httperr.Internal(c, "offering_update_failed", "could not update offering")
		return
	}

	c.JSON(http.StatusOK, offering)
}
