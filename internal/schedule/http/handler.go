package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/response"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
)

type Handler struct {
	service schedule.Service
}

func NewHandler(service schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBlockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	startDate, err := time.Parse(request.DateLayout, body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(request.DateLayout, body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
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

	b, err := h.service.Create(c.Request.Context(), schedule.CreateRequest{
		StartDate:   startDate,
		EndDate:     endDate,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Weekdays:    body.Weekdays,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBlockResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBlockResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	blocks, total, err := h.service.List(c.Request.Context(), schedule.Filter{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BlockResponse, len(blocks))
	for i, b := range blocks {
		items[i] = NewBlockResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBlockBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var req schedule.UpdateRequest
	if body.StartDate != nil {
		t, err := time.Parse(request.DateLayout, *body.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date, expected YYYY-MM-DD"})
			return
		}
		req.StartDate = &t
	}
	if body.EndDate != nil {
		t, err := time.Parse(request.DateLayout, *body.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date, expected YYYY-MM-DD"})
			return
		}
		req.EndDate = &t
	}
	if body.StartTime != nil {
		m, err := schedule.ParseClock(*body.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected HH:MM"})
			return
		}
		req.StartMinute = &m
	}
	if body.EndTime != nil {
		m, err := schedule.ParseClock(*body.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected HH:MM"})
			return
		}
		req.EndMinute = &m
	}
	req.Weekdays = body.Weekdays

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBlockResponse(b))
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
