package availability

import (
	"net/http"
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "slot not found")
	ErrSlotConflict       = apperror.New(http.StatusConflict, apperror.CodeSlotConflict, "slot is unavailable or already booked")
	ErrSlotReferenced     = apperror.New(http.StatusConflict, apperror.CodeSlotConflict, "slot is referenced by a booking")
	ErrInvalidWindow      = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "window start must be before window end")
	ErrInvalidSlotMinutes = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "slot minutes must be a positive number")
)

// Slot is a single bookable time interval on a specific date.
// is_booked only ever changes through the store's Reserve and Release;
// unavailable is an operator-set blackout flag.
type Slot struct {
	ID              string
	Date            time.Time // calendar date (midnight UTC)
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Unavailable     bool
	IsBooked        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Free reports whether the slot can currently be reserved.
func (s *Slot) Free() bool {
	return !s.Unavailable && !s.IsBooked
}

// Interval is a half-open [StartsAt, EndsAt) candidate produced by the
// generator before persistence.
type Interval struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Filter defines parameters for listing slots.
type Filter struct {
	FreeOnly  bool
	After     *time.Time // only slots starting strictly after this instant
	Durations []int      // restrict to these duration classes (minutes)
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}
