package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/domain/schedule"
)

// FromDomain maps the scheduling core's error taxonomy onto HTTP. Slot
// conflicts carry the overlapping booking id so the client UI can
// re-offer slot selection instead of showing a fatal error.
func FromDomain(c *gin.Context, err error) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		Write(c, http.StatusBadRequest, ve.Code, ve.Detail)
		return
	}

	var ce *schedule.SlotConflictError
	if errors.As(err, &ce) {
		Conflict(c, "slot_conflict", "the requested interval is already booked", gin.H{
			"booking_id": ce.BookingID,
			"interval":   ce.Interval.String(),
		})
		return
	}

	var te *schedule.InvalidTransitionError
	if errors.As(err, &te) {
		Conflict(c, "invalid_transition", te.Error(), gin.H{
			"from": te.From,
			"to":   te.To,
		})
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "not_found", "resource not found")
		return
	}

	Internal(c, "internal_error", "unexpected failure")
}
