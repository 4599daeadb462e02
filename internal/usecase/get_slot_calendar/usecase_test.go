package get_slot_calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
)

type mockVenueRepo struct{ mock.Mock }

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) ListByVenue(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type mockBlockRepo struct{ mock.Mock }

func (m *mockBlockRepo) ListByVenue(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.BlockedSlot, error) {
	args := m.Called(ctx, venueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BlockedSlot), args.Error(1)
}

type mockHolds struct{ mock.Mock }

func (m *mockHolds) HeldBy(ctx context.Context, slots []domain.SlotKey) (map[domain.SlotKey]string, error) {
	args := m.Called(ctx, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.SlotKey]string), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newTestUseCase(venues *mockVenueRepo, bookings *mockBookingRepo, blocks *mockBlockRepo, holds HoldStore) *UseCase {
	uc := NewUseCase(venues, bookings, blocks, holds, time.UTC, logger.NewNop())
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	venues, bookings, blocks := &mockVenueRepo{}, &mockBookingRepo{}, &mockBlockRepo{}
	holds := &mockHolds{}
	sunday := monday.AddDate(0, 0, 6)

	venues.On("GetByID", mock.Anything, int64(1)).Return(testVenue("06:00", "00:00"), nil)
	bookings.On("ListByVenue", mock.Anything, domain.VenueBookingsFilter{VenueID: 1, StartDate: monday, EndDate: sunday}).
		Return([]*domain.Booking{
			{ID: 5, BookingDate: tuesday, StartTime: "18:00", EndTime: "20:00", Status: domain.StatusBooked},
		}, nil)
	blocks.On("ListByVenue", mock.Anything, int64(1), monday, sunday).Return([]*domain.BlockedSlot{}, nil)
	holds.On("HeldBy", mock.Anything, mock.MatchedBy(func(keys []domain.SlotKey) bool {
		return len(keys) == 7*18
	})).Return(map[domain.SlotKey]string{}, nil)

	uc := newTestUseCase(venues, bookings, blocks, holds)
	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: time.Date(2026, 10, 22, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	assert.Equal(t, monday, resp.WeekStart)
	assert.Equal(t, 24, resp.CloseHour)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, domain.SlotBooked, statusAt(resp.Days[1].Slots, 19))
	assert.Equal(t, domain.SlotPast, statusAt(resp.Days[0].Slots, 6))
	holds.AssertExpectations(t)
}

func TestUseCase_Execute_InactiveVenue(t *testing.T) {
	venues := &mockVenueRepo{}
	v := testVenue("06:00", "22:00")
	v.IsActive = false
	venues.On("GetByID", mock.Anything, int64(1)).Return(v, nil)

	uc := newTestUseCase(venues, &mockBookingRepo{}, &mockBlockRepo{}, nil)
	_, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrVenueInactive)
}

func TestUseCase_Execute_VenueNotFound(t *testing.T) {
	venues := &mockVenueRepo{}
	venues.On("GetByID", mock.Anything, int64(9)).Return(nil, venueRepo.ErrVenueNotFound)

	uc := newTestUseCase(venues, &mockBookingRepo{}, &mockBlockRepo{}, nil)
	_, err := uc.Execute(context.Background(), &Request{VenueID: 9, Date: monday})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUseCase_Execute_HoldsFailureIgnored(t *testing.T) {
	venues, bookings, blocks := &mockVenueRepo{}, &mockBookingRepo{}, &mockBlockRepo{}
	holds := &mockHolds{}

	venues.On("GetByID", mock.Anything, int64(1)).Return(testVenue("06:00", "22:00"), nil)
	bookings.On("ListByVenue", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	blocks.On("ListByVenue", mock.Anything, int64(1), mock.Anything, mock.Anything).Return([]*domain.BlockedSlot{}, nil)
	holds.On("HeldBy", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	uc := newTestUseCase(venues, bookings, blocks, holds)
	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, statusAt(resp.Days[1].Slots, 10))
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&mockVenueRepo{}, &mockBookingRepo{}, &mockBlockRepo{}, nil)
	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
