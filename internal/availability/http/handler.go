package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/response"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
)

type Handler struct {
	service availability.Service
}

func NewHandler(service availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Generate(c *gin.Context) {
	var body GenerateSlotsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(request.DateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}
	startMinute, err := schedule.ParseClock(body.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected HH:MM"})
		return
	}
	endMinute, err := schedule.ParseClock(body.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected HH:MM"})
		return
	}

	slotMinutes := body.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = schedule.GenerationSlotMinutes
	}

	created, err := h.service.GenerateForDate(c.Request.Context(), date, startMinute, endMinute, slotMinutes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": NewSlotResponses(created)})
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	filter := availability.Filter{
		FreeOnly: c.Query("free") == "true",
		Page:     page,
		PageSize: pageSize,
	}

	if v := c.Query("after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid after, expected RFC3339"})
			return
		}
		filter.After = &t
	}

	if v := c.Query("durations"); v != "" {
		for _, part := range strings.Split(v, ",") {
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || d <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid durations, expected comma-separated minutes"})
				return
			}
			filter.Durations = append(filter.Durations, d)
		}
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

	slots, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewSlotResponses(slots), page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateSlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s, err := h.service.SetUnavailable(c.Request.Context(), id, *body.Unavailable)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponse(s))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
