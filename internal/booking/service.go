package booking

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	"github.com/ashleenbeauty/salon-booking-backend/internal/db"
	"github.com/ashleenbeauty/salon-booking-backend/internal/metrics"
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
)

type CreateRequest struct {
	UserID      string
	TreatmentID string
	SlotID      string
	Notes       string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ChangeSlot moves the booking onto a new slot. The new slot is reserved
	// before the old one is released; if the new reservation fails, the old
	// slot stays booked.
	ChangeSlot(ctx context.Context, id string, newSlotID string) (*Booking, error)

	// Cancel releases the slot and marks the booking cancelled. Cancelling an
	// already cancelled booking is a no-op.
	Cancel(ctx context.Context, id string) (*Booking, error)

	// Confirm moves a pending booking to confirmed. Confirming a cancelled
	// booking fails with ErrInvalidTransition.
	Confirm(ctx context.Context, id string) (*Booking, error)
}

type service struct {
	repo       Repository
	slots      availability.Repository
	treatments treatment.Repository
	tx         db.TxRunner
	db         db.Querier
	logger     zerolog.Logger
}

func NewService(
	repo Repository,
	slots availability.Repository,
	treatments treatment.Repository,
	tx db.TxRunner,
	q db.Querier,
	logger zerolog.Logger,
) Service {
	return &service{
		repo:       repo,
		slots:      slots,
		treatments: treatments,
		tx:         tx,
		db:         q,
		logger:     logger,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	t, err := s.treatments.GetByID(ctx, req.TreatmentID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		UserID:      req.UserID,
		SlotID:      req.SlotID,
		TreatmentID: req.TreatmentID,
		Notes:       req.Notes,
		Status:      StatusPending,
	}

	// Reservation and booking insert commit together. Any failure after the
	// compare-and-set rolls the reservation back, so there is never a booked
	// slot without a booking behind it.
	err = s.tx.WithinTx(ctx, func(q db.Querier) error {
		slot, err := s.slots.Reserve(ctx, q, req.SlotID)
		if err != nil {
			return err
		}
		if !t.AllowsSlotDuration(slot.DurationMinutes) {
			return ErrSlotMismatch
		}
		return s.repo.Create(ctx, q, b)
	})
	if err != nil {
		if errors.Is(err, availability.ErrSlotConflict) {
			metrics.IncReservationConflict()
		}
		return nil, err
	}

	metrics.IncBookingCreated(string(StatusPending))
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("slot_id", b.SlotID).
		Str("user_id", b.UserID).
		Msg("booking created")

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ChangeSlot(ctx context.Context, id string, newSlotID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return nil, ErrInvalidTransition
	}
	if b.SlotID == newSlotID {
		return b, nil
	}

	t, err := s.treatments.GetByID(ctx, b.TreatmentID)
	if err != nil {
		return nil, err
	}

	oldSlotID := b.SlotID
	err = s.tx.WithinTx(ctx, func(q db.Querier) error {
		newSlot, err := s.slots.Reserve(ctx, q, newSlotID)
		if err != nil {
			return err
		}
		if !t.AllowsSlotDuration(newSlot.DurationMinutes) {
			return ErrSlotMismatch
		}
		if err := s.repo.UpdateSlot(ctx, q, b.ID, newSlotID); err != nil {
			return err
		}
		_, err = s.slots.Release(ctx, q, oldSlotID)
		return err
	})
	if err != nil {
		if errors.Is(err, availability.ErrSlotConflict) {
			metrics.IncReservationConflict()
		}
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", b.ID).
		Str("old_slot_id", oldSlotID).
		Str("new_slot_id", newSlotID).
		Msg("booking moved to new slot")

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return b, nil
	}

	err = s.tx.WithinTx(ctx, func(q db.Querier) error {
		if err := s.repo.UpdateStatus(ctx, q, b.ID, StatusCancelled); err != nil {
			return err
		}
		_, err := s.slots.Release(ctx, q, b.SlotID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCancelled()
	s.logger.Info().
		Str("booking_id", b.ID).
		Str("slot_id", b.SlotID).
		Msg("booking cancelled")

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Active() {
		return nil, ErrInvalidTransition
	}
	if b.Status == StatusConfirmed {
		return b, nil
	}

	if err := s.repo.UpdateStatus(ctx, s.db, b.ID, StatusConfirmed); err != nil {
		return nil, err
	}

	metrics.IncBookingConfirmed()
	return s.repo.GetByID(ctx, b.ID)
}
