package booking

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ashleenbeauty/salon-booking-backend/internal/availability"
	"github.com/ashleenbeauty/salon-booking-backend/internal/db"
	"github.com/ashleenbeauty/salon-booking-backend/internal/treatment"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, q db.Querier, b *Booking) error {
	args := m.Called(ctx, q, b)
	if args.Error(0) == nil && b.ID == "" {
		b.ID = "booking-1"
	}
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*Booking), args.Int(1), args.Error(2)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, q db.Querier, id string, status Status) error {
	return m.Called(ctx, q, id, status).Error(0)
}

func (m *mockBookingRepo) UpdateSlot(ctx context.Context, q db.Querier, id string, slotID string) error {
	return m.Called(ctx, q, id, slotID).Error(0)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) ExistingIntervals(ctx context.Context, date time.Time) ([]availability.Interval, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.Interval), args.Error(1)
}

func (m *mockSlotRepo) InsertMissing(ctx context.Context, date time.Time, intervals []availability.Interval, slotMinutes int) ([]*availability.Slot, error) {
	args := m.Called(ctx, date, intervals, slotMinutes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*availability.Slot), args.Error(1)
}

func (m *mockSlotRepo) GetByID(ctx context.Context, id string) (*availability.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Slot), args.Error(1)
}

func (m *mockSlotRepo) List(ctx context.Context, filter availability.Filter) ([]*availability.Slot, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*availability.Slot), args.Int(1), args.Error(2)
}

func (m *mockSlotRepo) Reserve(ctx context.Context, q db.Querier, id string) (*availability.Slot, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Slot), args.Error(1)
}

func (m *mockSlotRepo) Release(ctx context.Context, q db.Querier, id string) (*availability.Slot, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Slot), args.Error(1)
}

func (m *mockSlotRepo) SetUnavailable(ctx context.Context, id string, unavailable bool) (*availability.Slot, error) {
	args := m.Called(ctx, id, unavailable)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Slot), args.Error(1)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockTreatmentRepo struct {
	mock.Mock
}

func (m *mockTreatmentRepo) GetByID(ctx context.Context, id string) (*treatment.Treatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treatment.Treatment), args.Error(1)
}

func (m *mockTreatmentRepo) List(ctx context.Context, filter treatment.Filter) ([]*treatment.Treatment, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*treatment.Treatment), args.Int(1), args.Error(2)
}

// fakeTxRunner runs the function directly. The rollback contract is covered by
// asserting that errors surface unchanged and later steps never run.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithinTx(ctx context.Context, fn func(q db.Querier) error) error {
	f.calls++
	return fn(nil)
}

type fixture struct {
	repo       *mockBookingRepo
	slots      *mockSlotRepo
	treatments *mockTreatmentRepo
	tx         *fakeTxRunner
	svc        Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:       new(mockBookingRepo),
		slots:      new(mockSlotRepo),
		treatments: new(mockTreatmentRepo),
		tx:         new(fakeTxRunner),
	}
	f.svc = NewService(f.repo, f.slots, f.treatments, f.tx, nil, zerolog.New(io.Discard))
	return f
}

func manicure(durationMinutes int) *treatment.Treatment {
	return &treatment.Treatment{
		ID:              "treatment-1",
		Category:        "nails",
		Name:            "Manicure",
		DurationMinutes: durationMinutes,
	}
}

func freeSlot(id string, durationMinutes int) *availability.Slot {
	return &availability.Slot{ID: id, DurationMinutes: durationMinutes, IsBooked: true}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(45), nil)
	f.slots.On("Reserve", ctx, nil, "slot-1").Return(freeSlot("slot-1", 60), nil)
	f.repo.On("Create", ctx, nil, mock.Anything).Return(nil)
	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		UserID: "user-1",
		SlotID: "slot-1",
		Status: StatusPending,
	}, nil)

	b, err := f.svc.Create(ctx, CreateRequest{
		UserID:      "user-1",
		TreatmentID: "treatment-1",
		SlotID:      "slot-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "booking-1", b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, 1, f.tx.calls)
	f.repo.AssertExpectations(t)
}

func TestCreateBookingSlotTaken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(45), nil)
	f.slots.On("Reserve", ctx, nil, "slot-1").Return(nil, availability.ErrSlotConflict)

	_, err := f.svc.Create(ctx, CreateRequest{
		UserID:      "user-1",
		TreatmentID: "treatment-1",
		SlotID:      "slot-1",
	})

	assert.ErrorIs(t, err, availability.ErrSlotConflict)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBookingDurationPolicy(t *testing.T) {
	tests := []struct {
		name             string
		treatmentMinutes int
		slotMinutes      int
		wantMismatch     bool
	}{
		{"30-minute treatment into 30-minute slot", 30, 30, false},
		{"30-minute treatment into 60-minute slot", 30, 60, true},
		{"45-minute treatment into 30-minute slot", 45, 30, false},
		{"45-minute treatment into 60-minute slot", 45, 60, false},
		{"60-minute treatment into 30-minute slot", 60, 30, false},
		{"60-minute treatment into 60-minute slot", 60, 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()

			f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(tt.treatmentMinutes), nil)
			f.slots.On("Reserve", ctx, nil, "slot-1").Return(freeSlot("slot-1", tt.slotMinutes), nil)

			if !tt.wantMismatch {
				f.repo.On("Create", ctx, nil, mock.Anything).Return(nil)
				f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{ID: "booking-1"}, nil)
			}

			_, err := f.svc.Create(ctx, CreateRequest{
				UserID:      "user-1",
				TreatmentID: "treatment-1",
				SlotID:      "slot-1",
			})

			if tt.wantMismatch {
				assert.ErrorIs(t, err, ErrSlotMismatch)
				f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingInsertFailureSurfaces(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	boom := errors.New("insert failed")

	f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(45), nil)
	f.slots.On("Reserve", ctx, nil, "slot-1").Return(freeSlot("slot-1", 30), nil)
	f.repo.On("Create", ctx, nil, mock.Anything).Return(boom)

	_, err := f.svc.Create(ctx, CreateRequest{
		UserID:      "user-1",
		TreatmentID: "treatment-1",
		SlotID:      "slot-1",
	})

	assert.ErrorIs(t, err, boom)
	f.repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateBookingUnknownTreatment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.treatments.On("GetByID", ctx, "missing").Return(nil, treatment.ErrNotFound)

	_, err := f.svc.Create(ctx, CreateRequest{
		UserID:      "user-1",
		TreatmentID: "missing",
		SlotID:      "slot-1",
	})

	assert.ErrorIs(t, err, treatment.ErrNotFound)
	assert.Equal(t, 0, f.tx.calls)
}

func TestChangeSlotReservesNewBeforeReleasingOld(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	current := &Booking{
		ID:          "booking-1",
		UserID:      "user-1",
		SlotID:      "slot-old",
		TreatmentID: "treatment-1",
		Status:      StatusPending,
	}
	f.repo.On("GetByID", ctx, "booking-1").Return(current, nil)
	f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(45), nil)

	var order []string
	f.slots.On("Reserve", ctx, nil, "slot-new").
		Run(func(mock.Arguments) { order = append(order, "reserve") }).
		Return(freeSlot("slot-new", 30), nil)
	f.repo.On("UpdateSlot", ctx, nil, "booking-1", "slot-new").
		Run(func(mock.Arguments) { order = append(order, "update") }).
		Return(nil)
	f.slots.On("Release", ctx, nil, "slot-old").
		Run(func(mock.Arguments) { order = append(order, "release") }).
		Return(&availability.Slot{ID: "slot-old"}, nil)

	_, err := f.svc.ChangeSlot(ctx, "booking-1", "slot-new")

	require.NoError(t, err)
	assert.Equal(t, []string{"reserve", "update", "release"}, order)
}

func TestChangeSlotNewSlotTakenKeepsOld(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:          "booking-1",
		SlotID:      "slot-old",
		TreatmentID: "treatment-1",
		Status:      StatusConfirmed,
	}, nil)
	f.treatments.On("GetByID", ctx, "treatment-1").Return(manicure(45), nil)
	f.slots.On("Reserve", ctx, nil, "slot-new").Return(nil, availability.ErrSlotConflict)

	_, err := f.svc.ChangeSlot(ctx, "booking-1", "slot-new")

	assert.ErrorIs(t, err, availability.ErrSlotConflict)
	f.repo.AssertNotCalled(t, "UpdateSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.slots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeSlotSameSlotIsNoOp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	current := &Booking{ID: "booking-1", SlotID: "slot-1", Status: StatusPending}
	f.repo.On("GetByID", ctx, "booking-1").Return(current, nil)

	b, err := f.svc.ChangeSlot(ctx, "booking-1", "slot-1")

	require.NoError(t, err)
	assert.Same(t, current, b)
	assert.Equal(t, 0, f.tx.calls)
}

func TestChangeSlotCancelledBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		SlotID: "slot-old",
		Status: StatusCancelled,
	}, nil)

	_, err := f.svc.ChangeSlot(ctx, "booking-1", "slot-new")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelReleasesSlot(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		SlotID: "slot-1",
		Status: StatusConfirmed,
	}, nil).Once()
	f.repo.On("UpdateStatus", ctx, nil, "booking-1", StatusCancelled).Return(nil)
	f.slots.On("Release", ctx, nil, "slot-1").Return(&availability.Slot{ID: "slot-1"}, nil)
	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		SlotID: "slot-1",
		Status: StatusCancelled,
	}, nil)

	b, err := f.svc.Cancel(ctx, "booking-1")

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)
	f.slots.AssertExpectations(t)
}

func TestCancelIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		SlotID: "slot-1",
		Status: StatusCancelled,
	}, nil)

	b, err := f.svc.Cancel(ctx, "booking-1")

	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, b.Status)
	assert.Equal(t, 0, f.tx.calls)
	f.slots.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPendingBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		Status: StatusPending,
	}, nil).Once()
	f.repo.On("UpdateStatus", ctx, nil, "booking-1", StatusConfirmed).Return(nil)
	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		Status: StatusConfirmed,
	}, nil)

	b, err := f.svc.Confirm(ctx, "booking-1")

	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, b.Status)
}

func TestConfirmCancelledBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.repo.On("GetByID", ctx, "booking-1").Return(&Booking{
		ID:     "booking-1",
		Status: StatusCancelled,
	}, nil)

	_, err := f.svc.Confirm(ctx, "booking-1")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmConfirmedBookingIsNoOp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	confirmed := &Booking{ID: "booking-1", Status: StatusConfirmed}
	f.repo.On("GetByID", ctx, "booking-1").Return(confirmed, nil)

	b, err := f.svc.Confirm(ctx, "booking-1")

	require.NoError(t, err)
	assert.Same(t, confirmed, b)
	f.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
