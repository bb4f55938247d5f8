package treatment

import (
	"net/http"
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "treatment not found")
)

// Treatment is a catalog entry referenced by bookings. The catalog itself is
// managed elsewhere; this service only reads it.
type Treatment struct {
	ID              string
	Category        string
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	CreatedAt       time.Time
}

// CompatibleSlotDurations lists the slot duration classes this treatment may
// be booked into. A 30-minute treatment fits only a 30-minute slot; every
// other duration may take a 30- or 60-minute slot.
func (t *Treatment) CompatibleSlotDurations() []int {
	if t.DurationMinutes == 30 {
		return []int{30}
	}
	return []int{30, 60}
}

// AllowsSlotDuration reports whether the treatment may occupy a slot of the
// given duration class.
func (t *Treatment) AllowsSlotDuration(slotMinutes int) bool {
	for _, d := range t.CompatibleSlotDurations() {
		if d == slotMinutes {
			return true
		}
	}
	return false
}

// Filter defines parameters for listing treatments.
type Filter struct {
	Category string
	Page     int
	PageSize int
}
