package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/timezone"
	uc "github.com/amizade-app/companion-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	getAvailability *uc.GetAvailability
	setWeekly       *uc.SetWeeklyAvailability
	setOverride     *uc.SetOverride
	getOpenSlots    *uc.GetOpenSlots
}

func NewAvailabilityHandler(
	getAvailability *uc.GetAvailability,
	setWeekly *uc.SetWeeklyAvailability,
	setOverride *uc.SetOverride,
	getOpenSlots *uc.GetOpenSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		getAvailability: getAvailability,
		setWeekly:       setWeekly,
		setOverride:     setOverride,
		getOpenSlots:    getOpenSlots,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type WeeklyRuleConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Active    bool   `json:"active"`
	Category  string `json:"category"`
}

type WeeklyAvailabilityRequest struct {
	Rules []WeeklyRuleConfig `json:"rules" binding:"required"`
}

type OverrideConfig struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    bool   `json:"active"`
	Category  string `json:"category"`
}

type OverrideRequest struct {
	Date  string           `json:"date" binding:"required"`
	Rules []OverrideConfig `json:"rules"`
}

// ======================================================
// COMPANION ENDPOINTS
// ======================================================

func (h *AvailabilityHandler) Get(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	availability, err := h.getAvailability.Execute(c.Request.Context(), companionID)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, availability)
}

func (h *AvailabilityHandler) PutWeekly(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	var req WeeklyAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rules := make([]models.AvailabilityRule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rules = append(rules, models.AvailabilityRule{
			Weekday:   r.Weekday,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Active:    r.Active,
			Category:  r.Category,
		})
	}

	saved, err := h.setWeekly.Execute(c.Request.Context(), companionID, companionID, rules)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rules": saved})
}

func (h *AvailabilityHandler) PutOverride(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	overrides := make([]models.AvailabilityOverride, 0, len(req.Rules))
	for _, o := range req.Rules {
		overrides = append(overrides, models.AvailabilityOverride{
			StartTime: o.StartTime,
			EndTime:   o.EndTime,
			Active:    o.Active,
			Category:  o.Category,
		})
	}

	saved, err := h.setOverride.Execute(
		c.Request.Context(), companionID, companionID, req.Date, overrides)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": req.Date, "rules": saved})
}

// ======================================================
// PUBLIC ENDPOINT
// ======================================================

type openSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (h *AvailabilityHandler) OpenSlots(c *gin.Context) {
	companionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "companion id must be numeric")
		return
	}

	date, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "expected date=YYYY-MM-DD")
		return
	}

	granularity := domain.DefaultGranularityMin
	if g := c.Query("granularity"); g != "" {
		if n, err := strconv.Atoi(g); err == nil && n > 0 {
			granularity = n
		}
	}

	slots, err := h.getOpenSlots.Execute(
		c.Request.Context(), uint(companionID), date, granularity)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	out := make([]openSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, openSlot{Start: s.Start.String(), End: s.End.String()})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": out,
	})
}
