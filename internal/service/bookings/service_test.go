package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByVenue(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) UpdatePayment(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

type mockVenueRepo struct{ mock.Mock }

func (m *mockVenueRepo) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) BookingChanged(eventType events.EventType, b *domain.Booking) {
	m.Called(eventType, b)
}

type passTx struct{}

func (passTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func (passTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var tuesday = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		VenueID:       1,
		CustomerID:    7,
		CustomerName:  "Ravi",
		BookingDate:   tuesday,
		StartTime:     "18:00",
		EndTime:       "20:00",
		DurationHours: 2,
		Status:        domain.StatusBooked,
		TotalAmount:   1000,
		AdvanceAmount: 400,
		PendingAmount: 600,
		PaymentStatus: domain.PaymentPartial,
		TicketCode:    "ABCD1234",
	}
}

func newService() (*Service, *mockBookingRepo, *mockVenueRepo, *mockNotifier) {
	bookings, venues, notifier := &mockBookingRepo{}, &mockVenueRepo{}, &mockNotifier{}
	venues.On("GetByID", mock.Anything, int64(1)).Return(&domain.Venue{ID: 1, OwnerID: 100}, nil)
	return NewService(bookings, venues, passTx{}, notifier, logger.NewNop()), bookings, venues, notifier
}

func TestGetByID(t *testing.T) {
	svc, bookings, _, _ := newService()
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)

	resp, err := svc.GetByID(context.Background(), 42, 100)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", resp.BookingDate)
	assert.Equal(t, "20:00", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 42, 555)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, bookings, _, _ := newService()
	bookings.On("GetByID", mock.Anything, int64(9)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.GetByID(context.Background(), 9, 100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListByVenue(t *testing.T) {
	svc, bookings, _, _ := newService()
	end := tuesday.AddDate(0, 0, 6)
	cancelled := domain.StatusCancelled
	bookings.On("ListByVenue", mock.Anything, domain.VenueBookingsFilter{
		VenueID: 1, StartDate: tuesday, EndDate: end, Status: &cancelled,
	}).Return([]*domain.Booking{testBooking()}, nil)

	resp, err := svc.ListByVenue(context.Background(), &models.ListVenueBookingsRequest{
		OwnerID: 100, VenueID: 1, From: tuesday, To: end, Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.ListByVenue(context.Background(), &models.ListVenueBookingsRequest{
		OwnerID: 100, VenueID: 1, From: end, To: tuesday,
	})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = svc.ListByVenue(context.Background(), &models.ListVenueBookingsRequest{
		OwnerID: 100, VenueID: 1, From: tuesday, To: end, Status: ptr.Ptr("no_show"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus(t *testing.T) {
	svc, bookings, _, notifier := newService()
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(42), domain.StatusCompleted).Return(nil)
	notifier.On("BookingChanged", events.BookingStatusChanged, mock.Anything).Return()

	resp, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{OwnerID: 100, Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	notifier.AssertExpectations(t)
}

func TestUpdateStatus_RevivalConflict(t *testing.T) {
	svc, bookings, _, notifier := newService()
	b := testBooking()
	b.Status = domain.StatusCancelled
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(42), domain.StatusBooked).Return(bookingRepo.ErrSlotNotAvailable)

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{OwnerID: 100, Status: "booked"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	notifier.AssertNotCalled(t, "BookingChanged", mock.Anything, mock.Anything)
}

func TestUpdateStatus_SerializationFailure(t *testing.T) {
	svc, bookings, _, _ := newService()
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(42), domain.StatusCancelled).Return(&pq.Error{Code: "40001"})

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{OwnerID: 100, Status: "cancelled"})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUpdateStatus_Invalid(t *testing.T) {
	svc, _, _, _ := newService()
	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{OwnerID: 100, Status: "no_show"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRecordPayment(t *testing.T) {
	svc, bookings, _, notifier := newService()
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)
	bookings.On("UpdatePayment", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PaidAmount == 600 && b.PendingAmount == 0 && b.PaymentStatus == domain.PaymentPaid
	})).Return(nil)
	notifier.On("BookingChanged", events.BookingPaymentAdded, mock.Anything).Return()

	resp, err := svc.RecordPayment(context.Background(), 42, &models.RecordPaymentRequest{
		OwnerID: 100, Amount: 600, PaymentMode: ptr.Ptr("upi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, "upi", *resp.PaymentMode)
}

func TestRecordPayment_Cancelled(t *testing.T) {
	svc, bookings, _, _ := newService()
	b := testBooking()
	b.Status = domain.StatusCancelled
	bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

	_, err := svc.RecordPayment(context.Background(), 42, &models.RecordPaymentRequest{OwnerID: 100, Amount: 100})
	assert.ErrorIs(t, err, ErrBookingCancelled)
	bookings.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything)
}

func TestTicket(t *testing.T) {
	svc, bookings, _, _ := newService()
	bookings.On("GetByID", mock.Anything, int64(42)).Return(testBooking(), nil)

	resp, err := svc.Ticket(context.Background(), 42, 100)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(resp.Payload), &payload))
	assert.Equal(t, "ABCD1234", payload["code"])
	assert.Equal(t, float64(42), payload["bookingId"])
	assert.Equal(t, "2026-10-20", payload["date"])
	assert.Equal(t, "18:00-20:00", payload["time"])
}
