package http

import (
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/booking"
	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
)

const clockLayout = "15:04"

type CreateBookingBody struct {
	SlotID      string `json:"slot_id" binding:"required,uuid"`
	TreatmentID string `json:"treatment_id" binding:"required,uuid"`
	Notes       string `json:"notes"`
}

type ChangeSlotBody struct {
	SlotID string `json:"slot_id" binding:"required,uuid"`
}

type BookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	SlotID        string    `json:"slot_id"`
	TreatmentID   string    `json:"treatment_id"`
	TreatmentName string    `json:"treatment_name"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		SlotID:        b.SlotID,
		TreatmentID:   b.TreatmentID,
		TreatmentName: b.TreatmentName,
		Notes:         b.Notes,
		Status:        string(b.Status),
		Date:          b.SlotDate.Format(request.DateLayout),
		StartTime:     b.SlotStartsAt.UTC().Format(clockLayout),
		EndTime:       b.SlotEndsAt.UTC().Format(clockLayout),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
