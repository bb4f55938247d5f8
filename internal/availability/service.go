package availability

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ashleenbeauty/salon-booking-backend/internal/db"
	"github.com/ashleenbeauty/salon-booking-backend/internal/metrics"
	"github.com/ashleenbeauty/salon-booking-backend/internal/schedule"
)

type Service interface {
	// GenerateForDate creates the missing slots for the window on the date
	// and returns only the newly created ones. Calling it again with the same
	// inputs creates nothing.
	GenerateForDate(ctx context.Context, date time.Time, startMinute, endMinute, slotMinutes int) ([]*Slot, error)

	GetByID(ctx context.Context, id string) (*Slot, error)
	List(ctx context.Context, filter Filter) ([]*Slot, int, error)
	Reserve(ctx context.Context, id string) (*Slot, error)
	Release(ctx context.Context, id string) (*Slot, error)
	SetUnavailable(ctx context.Context, id string, unavailable bool) (*Slot, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	db     db.Querier
	logger zerolog.Logger
}

func NewService(repo Repository, q db.Querier, logger zerolog.Logger) Service {
	return &service{repo: repo, db: q, logger: logger}
}

func (s *service) GenerateForDate(ctx context.Context, date time.Time, startMinute, endMinute, slotMinutes int) ([]*Slot, error) {
	if slotMinutes <= 0 {
		return nil, ErrInvalidSlotMinutes
	}
	if startMinute < 0 || endMinute > schedule.MinutesPerDay || startMinute >= endMinute {
		return nil, ErrInvalidWindow
	}

	candidates := SlotIntervals(date, startMinute, endMinute, slotMinutes)
	if len(candidates) == 0 {
		return nil, nil
	}

	existing, err := s.repo.ExistingIntervals(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[[2]int64]bool, len(existing))
	for _, iv := range existing {
		taken[intervalKey(iv)] = true
	}

	var missing []Interval
	for _, iv := range candidates {
		if !taken[intervalKey(iv)] {
			missing = append(missing, iv)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	// The unique constraint backstops the skip-check: a racing generator's
	// rows are skipped by ON CONFLICT instead of failing the whole insert.
	created, err := s.repo.InsertMissing(ctx, date, missing, slotMinutes)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("date", date.Format("2006-01-02")).
		Int("created", len(created)).
		Msg("slots generated")
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Slot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Slot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Reserve(ctx context.Context, id string) (*Slot, error) {
	slot, err := s.repo.Reserve(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			metrics.IncReservationConflict()
		}
		return nil, err
	}
	return slot, nil
}

func (s *service) Release(ctx context.Context, id string) (*Slot, error) {
	return s.repo.Release(ctx, s.db, id)
}

func (s *service) SetUnavailable(ctx context.Context, id string, unavailable bool) (*Slot, error) {
	return s.repo.SetUnavailable(ctx, id, unavailable)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func intervalKey(iv Interval) [2]int64 {
	return [2]int64{iv.StartsAt.Unix(), iv.EndsAt.Unix()}
}
