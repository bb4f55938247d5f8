package availability

import (
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
)

// SlotIntervals partitions the daily window [startMinute, endMinute) on the
// given date into consecutive, non-overlapping intervals of slotMinutes each,
// starting at startMinute. A trailing remainder shorter than slotMinutes is
// dropped rather than emitted as a short slot.
func SlotIntervals(date time.Time, startMinute, endMinute, slotMinutes int) []Interval {
	if slotMinutes <= 0 || startMinute >= endMinute {
		return nil
	}

	var out []Interval
	for m := startMinute; m+slotMinutes <= endMinute; m += slotMinutes {
		out = append(out, Interval{
			StartsAt: schedule.At(date, m),
			EndsAt:   schedule.At(date, m+slotMinutes),
		})
	}
	return out
}
