package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/models"
	"github.com/amizade-app/companion-api/internal/payments"
)

type PaymentsHandler struct {
	db       *gorm.DB
	checkout *payments.Checkout
}

func NewPaymentsHandler(db *gorm.DB, checkout *payments.Checkout) *PaymentsHandler {
	return &PaymentsHandler{db: db, checkout: checkout}
}

// CreateCheckout returns a Mercado Pago checkout link for one of the
// client's own bookings. Only confirmed, still unpaid bookings qualify.
func (h *PaymentsHandler) CreateCheckout(c *gin.Context) {
	if h.checkout == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "payments_disabled", "payments are not configured")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid booking id")
		return
	}

	var booking models.Booking
	if err := h.db.Preload("Offering").
		Where("id = ? AND client_id = ?", bookingID, userID).
		First(&booking).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "booking not found")
		return
	}

	if booking.Status != "confirmed" {
		httperr.Conflict(c, "booking_not_confirmed", "only confirmed bookings can be paid", nil)
		return
	}
	if booking.PaymentStatus == models.PaymentPaid {
		httperr.Conflict(c, "already_paid", "booking is already paid", nil)
		return
	}

	url, err := h.checkout.CreateForBooking(c.Request.Context(), &booking)
	if err != nil {
		httperr.Internal(c, "checkout_failed", "could not create checkout")
		return
	}

	if err := h.db.Model(&booking).
		Update("payment_status", models.PaymentPending).Error; err != nil {
		httperr.Internal(c, "update_failed", "could not update payment status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

type PaymentWebhook struct {
	ExternalReference string `json:"external_reference" binding:"required"`
	Status            string `json:"status" binding:"required"`
	PaymentID         string `json:"payment_id"`
}

// Webhook receives payment status notifications. It only flips the
// booking's payment fields; the booking lifecycle is untouched.
func (h *PaymentsHandler) Webhook(c *gin.Context) {
	var req PaymentWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var status string
	switch req.Status {
	case "approved":
		status = models.PaymentPaid
	case "refunded", "cancelled", "charged_back":
		status = models.PaymentRefunded
	default:
		// in_process, pending and friends stay pending
		c.Status(http.StatusNoContent)
		return
	}

	result := h.db.Model(&models.Booking{}).
		Where("reference = ?", req.ExternalReference).
		Updates(map[string]interface{}{
			"payment_status": status,
			"payment_ref":    req.PaymentID,
		})
	if result.Error != nil {
		httperr.Internal(c, "update_failed", "could not record payment")
		return
	}
	if result.RowsAffected == 0 {
		httperr.NotFound(c, "booking_not_found", "unknown external reference")
		return
	}

	c.Status(http.StatusNoContent)
}
