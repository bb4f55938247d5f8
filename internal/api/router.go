package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	availabilityHttp "github.com/ashleenbeauty/salon-booking-backend/internal/availability/http"
	"github.com/ashleenbeauty/salon-booking-backend/internal/booking"
	bookingHttp "github.com/ashleenbeauty/salon-booking-backend/internal/booking/http"
	"github.com/ashleenbeauty/salon-booking-backend/internal/identity"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
	scheduleHttp "github.com/ashleenbeauty/salon-booking-backend/internal/schedule/http"
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
	treatmentHttp "github.com/ashleenbeauty/salon-booking-backend/internal/treatment/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	Logger              zerolog.Logger
	AvailabilityService availability.Service
	ScheduleService     schedule.Service
	TreatmentService    treatment.Service
	BookingService      booking.Service
}

// NewRouter initializes the HTTP router engine: middleware (logging, CORS),
// module routes under /v1, plus health and metrics endpoints.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = []string{cfg.ProdOrigins}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-User-ID"}
	r.Use(cors.New(corsConfig))

	identityMiddleware := identity.Required()

	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	scheduleHandler := scheduleHttp.NewHandler(cfg.ScheduleService)
	treatmentHandler := treatmentHttp.NewHandler(cfg.TreatmentService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		availabilityHttp.RegisterRoutes(v1, availabilityHandler)
		scheduleHttp.RegisterRoutes(v1, scheduleHandler)
		treatmentHttp.RegisterRoutes(v1, treatmentHandler)
		bookingHttp.RegisterRoutes(v1, bookingHandler, identityMiddleware)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
