package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	bookingConfirmed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "booking_confirmed_total",
			Help:      "Count of bookings confirmed.",
		},
	)

	slotsGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "slots_generated_total",
			Help:      "Count of availability slots created by the generator.",
		},
	)

	reservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salon_booking",
			Name:      "reservation_conflict_total",
			Help:      "Count of slot reservation attempts rejected as conflicts.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingCancelled,
			bookingConfirmed,
			slotsGenerated,
			reservationConflicts,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncBookingConfirmed() {
	bookingConfirmed.Inc()
}

func AddSlotsGenerated(n int) {
	slotsGenerated.Add(float64(n))
}

func IncReservationConflict() {
	reservationConflicts.Inc()
}
