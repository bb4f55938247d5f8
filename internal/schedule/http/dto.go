package http

import (
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/request"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
)

type CreateBlockBody struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Weekdays  []int  `json:"weekdays"`
}

type UpdateBlockBody struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Weekdays  []int   `json:"weekdays"`
}

type BlockResponse struct {
	ID        string    `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Weekdays  []int     `json:"weekdays"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewBlockResponse(b *schedule.Block) BlockResponse {
	weekdays := b.Weekdays
	if weekdays == nil {
		weekdays = []int{}
	}
	return BlockResponse{
		ID:        b.ID,
		StartDate: b.StartDate.Format(request.DateLayout),
		EndDate:   b.EndDate.Format(request.DateLayout),
		StartTime: schedule.FormatClock(b.StartMinute),
		EndTime:   schedule.FormatClock(b.EndMinute),
		Weekdays:  weekdays,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
