package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashleenbeauty/salon-booking-backend/internal/booking"
	"github.com/ashleenbeauty/salon-booking-backend/internal/identity"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// getOwned loads a booking and verifies the caller owns it. Ownership is the
// only access rule here; the upstream gateway handles everything else.
func (h *Handler) getOwned(c *gin.Context, id string) (*booking.Booking, error) {
	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if b.UserID != identity.UserRef(c) {
		return nil, booking.ErrPermissionDenied
	}
	return b, nil
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:      identity.UserRef(c),
		TreatmentID: body.TreatmentID,
		SlotID:      body.SlotID,
		Notes:       body.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	filter := booking.Filter{
		UserID:   identity.UserRef(c), // callers only ever see their own bookings
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	dateFrom, err := request.QueryDate(c, "date_from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_from, expected YYYY-MM-DD"})
		return
	}
	filter.DateFrom = dateFrom

	dateTo, err := request.QueryDate(c, "date_to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date_to, expected YYYY-MM-DD"})
		return
	}
	filter.DateTo = dateTo

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.getOwned(c, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ChangeSlot(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ChangeSlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if _, err := h.getOwned(c, id); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.ChangeSlot(c.Request.Context(), id, body.SlotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if _, err := h.getOwned(c, id); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Confirm(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if _, err := h.getOwned(c, id); err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}
