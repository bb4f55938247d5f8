package booking

import (
	"net/http"
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "booking not found")
	ErrSlotMismatch      = apperror.New(http.StatusBadRequest, apperror.CodeSlotMismatch, "treatment duration does not fit this slot")
	ErrInvalidTransition = apperror.New(http.StatusConflict, apperror.CodeInvalidTransition, "booking is cancelled")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, apperror.CodePermissionDenied, "permission denied")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking is a user's claim on exactly one slot for one treatment.
// While the booking is not cancelled, its slot stays reserved; cancellation
// releases the slot and is terminal.
type Booking struct {
	ID          string
	UserID      string
	SlotID      string
	TreatmentID string
	Notes       string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined display fields
	SlotDate            time.Time
	SlotStartsAt        time.Time
	SlotEndsAt          time.Time
	SlotDurationMinutes int
	TreatmentName       string
}

// Active reports whether the booking still holds its slot.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID   string
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
