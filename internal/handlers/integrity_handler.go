package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amizade-app/companion-api/internal/httperr"
	uc "github.com/amizade-app/companion-api/internal/usecase/schedule"
)

// IntegrityHandler exposes the operator surface: scan first, decide,
// then cleanup explicitly. Nothing is ever repaired on read.
type IntegrityHandler struct {
	check   *uc.RunIntegrityCheck
	cleanup *uc.Cleanup
}

func NewIntegrityHandler(check *uc.RunIntegrityCheck, cleanup *uc.Cleanup) *IntegrityHandler {
	return &IntegrityHandler{check: check, cleanup: cleanup}
}

func (h *IntegrityHandler) Run(c *gin.Context) {
	anomalies, err := h.check.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "integrity_check_failed", "could not scan bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(anomalies),
		"anomalies": anomalies,
	})
}

type CleanupRequest struct {
	// Empty list repairs every current anomaly.
	BookingIDs []uint `json:"booking_ids"`
}

func (h *IntegrityHandler) Cleanup(c *gin.Context) {
	var req CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	report, err := h.cleanup.Execute(c.Request.Context(), req.BookingIDs)
	if err != nil {
		httperr.Internal(c, "cleanup_failed", "could not apply repairs")
		return
	}

	c.JSON(http.StatusOK, report)
}
