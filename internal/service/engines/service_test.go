package engines

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
)

type mockEngineRepo struct{ mock.Mock }

func (m *mockEngineRepo) ListByVenue(ctx context.Context, venueID int64) ([]*domain.Engine, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).([]*domain.Engine), args.Error(1)
}

func (m *mockEngineRepo) Upsert(ctx context.Context, engine *domain.Engine) error {
	return m.Called(ctx, engine).Error(0)
}

type mockVenueRepo struct{ mock.Mock }

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type mockCounter struct{ mock.Mock }

func (m *mockCounter) CountCompleted(ctx context.Context, venueID, customerID int64) (int, error) {
	args := m.Called(ctx, venueID, customerID)
	return args.Int(0), args.Error(1)
}

type mockCalendar struct{ mock.Mock }

func (m *mockCalendar) Execute(ctx context.Context, req *getSlotCalendar.Request) (*getSlotCalendar.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getSlotCalendar.Response), args.Error(1)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	wednesday = time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	testNow   = time.Date(2026, 10, 21, 17, 40, 0, 0, time.UTC)
)

type fixture struct {
	svc      *Service
	engines  *mockEngineRepo
	counter  *mockCounter
	calendar *mockCalendar
}

func newFixture() *fixture {
	f := &fixture{
		engines:  &mockEngineRepo{},
		counter:  &mockCounter{},
		calendar: &mockCalendar{},
	}
	venues := &mockVenueRepo{}
	venues.On("GetByID", mock.Anything, int64(1)).Return(&domain.Venue{ID: 1, OwnerID: 100, IsActive: true}, nil)
	venues.On("GetByID", mock.Anything, int64(404)).Return(nil, venueRepo.ErrVenueNotFound)

	f.svc = NewService(f.engines, venues, f.counter, f.calendar, passTx{}, time.UTC, logger.NewNop())
	f.svc.now = func() time.Time { return testNow }
	return f
}

// week возвращает неделю, в которой свободны только часы available в среду
func week(available ...int) *getSlotCalendar.Response {
	free := make(map[int]bool, len(available))
	for _, h := range available {
		free[h] = true
	}

	slots := make([]domain.Slot, 0, 18)
	for h := 6; h < 24; h++ {
		status := domain.SlotBooked
		if free[h] {
			status = domain.SlotAvailable
		}
		slots = append(slots, domain.Slot{Date: wednesday, Hour: h, Status: status})
	}

	return &getSlotCalendar.Response{
		VenueID: 1,
		Days: []domain.DaySlots{
			{Date: wednesday.AddDate(0, 0, -2)},
			{Date: wednesday.AddDate(0, 0, -1)},
			{Date: wednesday, Slots: slots},
		},
	}
}

func engine(cfg domain.EngineConfig) *domain.Engine {
	return &domain.Engine{VenueID: 1, Kind: cfg.Kind(), Enabled: true, Config: cfg}
}

func TestWidgets_Scarcity(t *testing.T) {
	tests := []struct {
		name      string
		available []int
		shown     bool
	}{
		{name: "below threshold", available: []int{20, 21}, shown: true},
		{name: "equal to threshold", available: []int{19, 20, 21}, shown: true},
		{name: "above threshold", available: []int{18, 19, 20, 21}, shown: false},
		{name: "fully booked", available: nil, shown: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
				engine(domain.ScarcityConfig{Threshold: 3, Message: "Осталось {count}"}),
			}, nil)
			f.calendar.On("Execute", mock.Anything, mock.Anything).Return(week(tt.available...), nil)

			resp, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday})
			require.NoError(t, err)

			if !tt.shown {
				assert.Empty(t, resp.Widgets)
				return
			}
			require.Len(t, resp.Widgets, 1)
			assert.Equal(t, len(tt.available), *resp.Widgets[0].AvailableSlots)
			assert.Contains(t, resp.Widgets[0].Message, "Осталось")
		})
	}
}

func TestWidgets_Countdown(t *testing.T) {
	f := newFixture()
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		engine(domain.CountdownConfig{WindowMinutes: 60}),
	}, nil)
	// 17:00 уже начался, ближайший свободный 18:00 через 20 минут
	f.calendar.On("Execute", mock.Anything, mock.Anything).Return(week(17, 18, 22), nil)

	resp, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Widgets, 1)

	w := resp.Widgets[0]
	assert.Equal(t, "countdown", w.Kind)
	assert.Equal(t, 18, w.NextSlotStart.Hour())
	assert.Equal(t, 20*60, *w.SecondsLeft)
	assert.Contains(t, w.Message, "20")
}

func TestWidgets_CountdownOutsideWindow(t *testing.T) {
	f := newFixture()
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		engine(domain.CountdownConfig{WindowMinutes: 60}),
	}, nil)
	f.calendar.On("Execute", mock.Anything, mock.Anything).Return(week(22), nil)

	resp, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Widgets)
}

func TestWidgets_StaticEnginesSkipCalendar(t *testing.T) {
	f := newFixture()
	disabled := engine(domain.ScarcityConfig{Threshold: 5})
	disabled.Enabled = false
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		disabled,
		engine(domain.ScratchCardConfig{DiscountPercent: 10, MaxDiscount: 200, PromoCode: "TURF10"}),
	}, nil)

	resp, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday})
	require.NoError(t, err)
	require.Len(t, resp.Widgets, 1)
	assert.Equal(t, 10, *resp.Widgets[0].DiscountPercent)
	assert.Equal(t, "TURF10", *resp.Widgets[0].PromoCode)
	f.calendar.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestWidgets_Loyalty(t *testing.T) {
	f := newFixture()
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		engine(domain.LoyaltyConfig{BookingsForReward: 5, Reward: "Бесплатный час"}),
	}, nil)
	f.counter.On("CountCompleted", mock.Anything, int64(1), int64(7)).Return(7, nil)

	resp, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday, CustomerID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	require.Len(t, resp.Widgets, 1)
	assert.Equal(t, 2, *resp.Widgets[0].CompletedBookings)
	assert.Equal(t, 5, *resp.Widgets[0].BookingsForReward)

	// Без клиента прогресс не показывается
	resp, err = f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 1, Date: wednesday})
	require.NoError(t, err)
	assert.Empty(t, resp.Widgets)
}

func TestWidgets_ABPromoIsDeterministic(t *testing.T) {
	f := newFixture()
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		engine(domain.ABPromoConfig{VariantA: "A text", VariantB: "B text", SplitPercent: 50}),
	}, nil)

	req := &models.WidgetsRequest{VenueID: 1, Date: wednesday, VisitorID: "visitor-42"}
	first, err := f.svc.Widgets(context.Background(), req)
	require.NoError(t, err)
	second, err := f.svc.Widgets(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, first.Widgets, 1)
	assert.Equal(t, *first.Widgets[0].Variant, *second.Widgets[0].Variant)

	expected := "B"
	if abBucket("visitor-42", 1) < 50 {
		expected = "A"
	}
	assert.Equal(t, expected, *first.Widgets[0].Variant)
}

func TestABBucket_Split(t *testing.T) {
	assert.Equal(t, "A", *abPromoWidget(domain.ABPromoConfig{VariantA: "a", VariantB: "b", SplitPercent: 100}, "x", 1).Variant)
	assert.Equal(t, "B", *abPromoWidget(domain.ABPromoConfig{VariantA: "a", VariantB: "b", SplitPercent: 0}, "x", 1).Variant)
}

func TestWidgets_VenueNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Widgets(context.Background(), &models.WidgetsRequest{VenueID: 404, Date: wednesday})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpsert(t *testing.T) {
	f := newFixture()
	f.engines.On("Upsert", mock.Anything, mock.MatchedBy(func(e *domain.Engine) bool {
		cfg, ok := e.Config.(domain.ScarcityConfig)
		return ok && cfg.Threshold == 3 && e.VenueID == 1
	})).Return(nil).Once()
	f.engines.On("ListByVenue", mock.Anything, int64(1)).Return([]*domain.Engine{
		engine(domain.ScarcityConfig{Threshold: 3}),
	}, nil)

	resp, err := f.svc.Upsert(context.Background(), &models.UpsertEnginesRequest{
		OwnerID: 100,
		VenueID: 1,
		Engines: []models.EngineDTO{
			{Kind: "scarcity", Enabled: true, Config: json.RawMessage(`{"threshold":3}`)},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Engines, 1)
	assert.JSONEq(t, `{"threshold":3,"message":""}`, string(resp.Engines[0].Config))
	f.engines.AssertExpectations(t)
}

func TestUpsert_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		ownerID int64
		engines []models.EngineDTO
		wantErr error
	}{
		{
			name:    "foreign venue",
			ownerID: 200,
			engines: []models.EngineDTO{{Kind: "scarcity", Config: json.RawMessage(`{"threshold":3}`)}},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "unknown kind",
			ownerID: 100,
			engines: []models.EngineDTO{{Kind: "lottery", Config: json.RawMessage(`{}`)}},
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "invalid config",
			ownerID: 100,
			engines: []models.EngineDTO{{Kind: "ab_promo", Config: json.RawMessage(`{"variant_a":"x","split_percent":50}`)}},
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "duplicate kind",
			ownerID: 100,
			engines: []models.EngineDTO{
				{Kind: "loyalty", Config: json.RawMessage(`{"bookings_for_reward":5}`)},
				{Kind: "loyalty", Config: json.RawMessage(`{"bookings_for_reward":3}`)},
			},
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "empty",
			ownerID: 100,
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.svc.Upsert(context.Background(), &models.UpsertEnginesRequest{
				OwnerID: tt.ownerID, VenueID: 1, Engines: tt.engines,
			})
			assert.ErrorIs(t, err, tt.wantErr)
			f.engines.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}
