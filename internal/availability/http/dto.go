package http

import (
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
)

const clockLayout = "15:04"

type GenerateSlotsBody struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	SlotMinutes int    `json:"slot_minutes"`
}

type UpdateSlotBody struct {
	Unavailable *bool `json:"unavailable" binding:"required"`
}

type SlotResponse struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Unavailable     bool      `json:"unavailable"`
	IsBooked        bool      `json:"is_booked"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewSlotResponse(s *availability.Slot) SlotResponse {
	return SlotResponse{
		ID:              s.ID,
		Date:            s.Date.Format(request.DateLayout),
		StartTime:       s.StartsAt.UTC().Format(clockLayout),
		EndTime:         s.EndsAt.UTC().Format(clockLayout),
		DurationMinutes: s.DurationMinutes,
		Unavailable:     s.Unavailable,
		IsBooked:        s.IsBooked,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func NewSlotResponses(slots []*availability.Slot) []SlotResponse {
	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	return items
}
