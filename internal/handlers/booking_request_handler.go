package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amizade-app/companion-api/internal/httperr"
	"github.com/amizade-app/companion-api/internal/httpresp"
	"github.com/amizade-app/companion-api/internal/middleware"
	uc "github.com/amizade-app/companion-api/internal/usecase/schedule"
)

type BookingRequestHandler struct {
	create  *uc.CreateBookingRequest
	respond *uc.RespondToBookingRequest
	list    *uc.ListRequests
}

func NewBookingRequestHandler(
	create *uc.CreateBookingRequest,
	respond *uc.RespondToBookingRequest,
	list *uc.ListRequests,
) *BookingRequestHandler {
	return &BookingRequestHandler{
		create:  create,
		respond: respond,
		list:    list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequestRequest struct {
	CompanionID uint   `json:"companion_id" binding:"required"`
	OfferingID  *uint  `json:"offering_id"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MeetingType string `json:"meeting_type" binding:"omitempty,oneof=in_person virtual"`
	Location    string `json:"location"`
	Message     string `json:"message"`
}

type RespondRequest struct {
	Action   string `json:"action" binding:"required,oneof=accept reject"`
	Response string `json:"response"`

	SuggestedDate  string `json:"suggested_date"`
	SuggestedStart string `json:"suggested_start"`
	SuggestedEnd   string `json:"suggested_end"`
}

// ======================================================
// CLIENT ENDPOINTS
// ======================================================

func (h *BookingRequestHandler) Create(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.create.Execute(c.Request.Context(), uc.CreateBookingRequestInput{
		ClientID:    clientID,
		CompanionID: req.CompanionID,
		OfferingID:  req.OfferingID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MeetingType: req.MeetingType,
		Location:    req.Location,
		Message:     req.Message,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, out)
}

func (h *BookingRequestHandler) ListMine(c *gin.Context) {
	clientID := c.MustGet(middleware.ContextUserID).(uint)

	reqs, err := h.list.ForClient(c.Request.Context(), clientID)
	if err != nil {
		httperr.Internal(c, "request_list_failed", "could not list booking requests")
		return
	}

	httpresp.List(c, reqs)
}

// ======================================================
// COMPANION ENDPOINTS
// ======================================================

func (h *BookingRequestHandler) ListForCompanion(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	reqs, err := h.list.ForCompanion(c.Request.Context(), companionID)
	if err != nil {
		httperr.Internal(c, "request_list_failed", "could not list booking requests")
		return
	}

	httpresp.List(c, reqs)
}

func (h *BookingRequestHandler) Respond(c *gin.Context) {
	companionID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "request id must be numeric")
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.respond.Execute(c.Request.Context(), uc.RespondInput{
		RequestID:      uint(requestID),
		CompanionID:    companionID,
		Accept:         req.Action == "accept",
		Response:       req.Response,
		SuggestedDate:  req.SuggestedDate,
		SuggestedStart: req.SuggestedStart,
		SuggestedEnd:   req.SuggestedEnd,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
