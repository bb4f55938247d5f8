package http

import (
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
)

type TreatmentResponse struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
}

func NewTreatmentResponse(t *treatment.Treatment) TreatmentResponse {
	return TreatmentResponse{
		ID:              t.ID,
		Category:        t.Category,
		Name:            t.Name,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
		Price:           t.Price,
	}
}
