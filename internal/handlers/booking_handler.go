package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/amizade-app/companion-api/internal/domain/schedule"
	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/httpresp"
	"github.com/amizade-app/companion-api/internal/middleware"
	"github.com/amizade-app/companion-api/internal/timezone"
	uc "github.com/amizade-app/companion-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	reserve    *uc.Reserve
	transition *uc.TransitionBooking
	agenda     *uc.ListAgenda
	repo       domain.Repository
}

func NewBookingHandler(
	reserve *uc.Reserve,
	transition *uc.TransitionBooking,
	agenda *uc.ListAgenda,
	repo domain.Repository,
) *BookingHandler {
	return &BookingHandler{
		reserve:    reserve,
		transition: transition,
		agenda:     agenda,
		repo:       repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ReserveRequest struct {
	CompanionID uint   `json:"companion_id" binding:"required"`
	OfferingID  *uint  `json:"offering_id"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time"`
	MeetingType string `json:"meeting_type" binding:"omitempty,oneof=in_person virtual"`
	Location    string `json:"location"`
	Notes       string `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled completed no_show"`
}

// ======================================================
// CLIENT ENDPOINTS
// ======================================================

func (h *BookingHandler) Reserve(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	booking, err := h.reserve.Execute(c.Request.Context(), uc.ReserveInput{
		ClientID:    clientID,
		CompanionID: req.CompanionID,
		OfferingID:  req.OfferingID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingType: req.MeetingType,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.repo.ListBookingsForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "booking_list_failed", "could not list bookings")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// COMPANION ENDPOINTS
// ======================================================

func (h *BookingHandler) AgendaByDate(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	date, err := timezone.ParseDate(c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "expected date=YYYY-MM-DD")
		return
	}

	items, err := h.agenda.ByDate(c.Request.Context(), companionID, date)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *BookingHandler) AgendaByMonth(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "expected year=YYYY&month=1-12")
		return
	}

	items, err := h.agenda.ByMonth(c.Request.Context(), companionID, year, time.Month(month))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// TRANSITIONS (client or companion, role-checked in the core)
// ======================================================

func (h *BookingHandler) Transition(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(string)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "booking id must be numeric")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	booking, err := h.transition.Execute(c.Request.Context(), uc.TransitionInput{
		BookingID: uint(bookingID),
		ActorID:   actorID,
		ActorRole: actorRole,
		NewStatus: req.Status,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
