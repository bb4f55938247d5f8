package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/response"
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
)

type Handler struct {
	service treatment.Service
}

func NewHandler(service treatment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, pageSize := request.Pagination(c)

	treatments, total, err := h.service.List(c.Request.Context(), treatment.Filter{
		Category: c.Query("category"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TreatmentResponse, len(treatments))
	for i, t := range treatments {
		items[i] = NewTreatmentResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTreatmentResponse(t))
}
