package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashleenbeauty/salon-booking-backend/internal/metrics"
)

// GenerationSlotMinutes is the fixed granularity used when a block is
// expanded into bookable slots.
const GenerationSlotMinutes = 30

// SlotGenerator creates the missing slots for one date inside a daily window.
// It reports how many slots were newly created; already existing intervals
// are skipped.
type SlotGenerator interface {
	GenerateForDate(ctx context.Context, date time.Time, startMinute, endMinute, slotMinutes int) (created int, err error)
}

type CreateRequest struct {
	StartDate   time.Time
	EndDate     time.Time
	StartMinute int
	EndMinute   int
	Weekdays    []int
}

type UpdateRequest struct {
	StartDate   *time.Time
	EndDate     *time.Time
	StartMinute *int
	EndMinute   *int
	Weekdays    []int // nil means unchanged; an empty set means "no days"
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Block, error)
	GetByID(ctx context.Context, id string) (*Block, error)
	List(ctx context.Context, filter Filter) ([]*Block, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Block, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	slots  SlotGenerator
	logger zerolog.Logger
}

func NewService(repo Repository, slots SlotGenerator, logger zerolog.Logger) Service {
	return &service{repo: repo, slots: slots, logger: logger}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Block, error) {
	weekdays, err := NormalizeWeekdays(req.Weekdays)
	if err != nil {
		return nil, err
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if err := validateWindow(req.StartMinute, req.EndMinute); err != nil {
		return nil, err
	}

	b := &Block{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartMinute: req.StartMinute,
		EndMinute:   req.EndMinute,
		Weekdays:    weekdays,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if err := s.regenerate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Block, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Block, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Block, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil {
		b.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		b.EndDate = *req.EndDate
	}
	if req.StartMinute != nil {
		b.StartMinute = *req.StartMinute
	}
	if req.EndMinute != nil {
		b.EndMinute = *req.EndMinute
	}
	if req.Weekdays != nil {
		weekdays, err := NormalizeWeekdays(req.Weekdays)
		if err != nil {
			return nil, err
		}
		b.Weekdays = weekdays
	}

	if b.EndDate.Before(b.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if err := validateWindow(b.StartMinute, b.EndMinute); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	// Edits are additive only: slots generated under the previous window or
	// weekday set are left in place. Retiring capacity is a separate operator
	// action on the slots themselves.
	if err := s.regenerate(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	// Previously generated slots survive the block that produced them.
	return s.repo.Delete(ctx, id)
}

// regenerate fills in the missing slots for every date the block expands to.
// Safe to re-run: dates whose intervals already exist create nothing.
func (s *service) regenerate(ctx context.Context, b *Block) error {
	total := 0
	for date := range b.Dates() {
		created, err := s.slots.GenerateForDate(ctx, date, b.StartMinute, b.EndMinute, GenerationSlotMinutes)
		if err != nil {
			return fmt.Errorf("generate slots for %s failed: %w", date.Format("2006-01-02"), err)
		}
		total += created
	}

	metrics.AddSlotsGenerated(total)
	s.logger.Info().
		Str("block_id", b.ID).
		Int("slots_created", total).
		Msg("availability block expanded")
	return nil
}

func validateWindow(startMinute, endMinute int) error {
	if startMinute < 0 || endMinute > MinutesPerDay || startMinute >= endMinute {
		return ErrInvalidWindow
	}
	return nil
}
