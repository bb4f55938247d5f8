package schedule

import (
	"iter"
	"net/http"
	"time"

	"github.com/ashleenbeauty/salon-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, apperror.CodeNotFound, "availability block not found")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "start date must not be after end date")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "window start must be before window end")
	ErrInvalidWeekday   = apperror.New(http.StatusBadRequest, apperror.CodeInvalidInput, "weekday ordinals must be between 0 (Monday) and 6 (Sunday)")
)

// Block is a recurring availability window: a daily time window applied to
// the selected weekdays across an inclusive date range. Blocks are templates;
// they expand into concrete slots and never own the slots they generated.
type Block struct {
	ID          string
	StartDate   time.Time
	EndDate     time.Time
	StartMinute int // daily window start, minutes since midnight
	EndMinute   int // daily window end, minutes since midnight
	Weekdays    []int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Dates expands the block into the concrete dates it applies to.
func (b *Block) Dates() iter.Seq[time.Time] {
	return DatesBetween(b.StartDate, b.EndDate, b.Weekdays)
}

// Filter defines parameters for listing blocks.
type Filter struct {
	Page     int
	PageSize int
}
