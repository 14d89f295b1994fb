package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	repo domain.Repository
}

func NewAuditLogsHandler(repo domain.Repository) *AuditLogsHandler {
	return &AuditLogsHandler{repo: repo}
}

// List shows a companion their availability/booking change history.
// Optional from/to filters are calendar dates; to is inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	var from, to time.Time

	if s := c.Query("from"); s != "" {
		d, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "expected from=YYYY-MM-DD")
			return
		}
		from = d
	}

	if s := c.Query("to"); s != "" {
		d, err := timezone.ParseDate(s)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "expected to=YYYY-MM-DD")
			return
		}
		to = d.Add(24 * time.Hour)
	}

	entries, err := h.repo.AuditEntriesFor(c.Request.Context(), companionID, from, to)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "could not list audit entries")
		return
	}

	c.JSON(200, gin.H{
		"total":   len(entries),
		"entries": entries,
	})
}
