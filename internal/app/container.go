package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ashleenbeauty/salon-booking-backend/internal/api"
	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	"github.com/ashleenbeauty/salon-booking-backend/internal/booking"
	"github.com/ashleenbeauty/salon-booking-backend/internal/db"
	"github.com/ashleenbeauty/salon-booking-backend/internal/metrics"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// slotGenerator adapts the availability service to the count-only generation
// trigger the schedule module expects.
type slotGenerator struct {
	svc availability.Service
}

func (g slotGenerator) GenerateForDate(ctx context.Context, date time.Time, startMinute, endMinute, slotMinutes int) (int, error) {
	created, err := g.svc.GenerateForDate(ctx, date, startMinute, endMinute, slotMinutes)
	if err != nil {
		return 0, err
	}
	return len(created), nil
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	metrics.Register()

	txRunner := db.NewTxRunner(cfg.DBPool)

	// Availability module
	slotRepo := availability.NewPgxRepository(cfg.DBPool)
	slotService := availability.NewService(slotRepo, cfg.DBPool, cfg.Logger)

	// Schedule module (recurring availability blocks)
	blockRepo := schedule.NewPgxRepository(cfg.DBPool)
	scheduleService := schedule.NewService(blockRepo, slotGenerator{svc: slotService}, cfg.Logger)

	// Treatment catalog (read-only)
	treatmentRepo := treatment.NewPgxRepository(cfg.DBPool)
	treatmentService := treatment.NewService(treatmentRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, slotRepo, treatmentRepo, txRunner, cfg.DBPool, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		Logger:              cfg.Logger,
		AvailabilityService: slotService,
		ScheduleService:     scheduleService,
		TreatmentService:    treatmentService,
		BookingService:      bookingService,
	})

	return &Container{Router: router}
}
