package save_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/domain"
	bookingModels "github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
	saveBooking "github.com/m04kA/SMC-TurfManager/internal/usecase/save_booking"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *saveBooking.Request) (*saveBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*saveBooking.Response), args.Error(1)
}

const body = `{
	"customer": {"name": "Arjun", "phone": "+919800000001"},
	"bookingDate": "2026-10-20",
	"startTime": "18:00",
	"durationHours": 2,
	"discountAmount": 100,
	"paidAmount": 500,
	"paymentMode": "upi"
}`

func savedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            11,
		VenueID:       1,
		CustomerID:    5,
		BookingDate:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "20:00",
		DurationHours: 2,
		Status:        domain.StatusBooked,
		TotalAmount:   1000,
		TicketCode:    "TKT-ABC",
	}
}

func createRequest(payload string, ownerID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/venues/1/bookings", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"venueId": "1"})
	if ownerID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), ownerID))
	}
	return req
}

func TestHandleCreate_PublicIgnoresMoney(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *saveBooking.Request) bool {
		return r.OwnerID == 0 && r.VenueID == 1 && r.StartTime == "18:00" &&
			r.DiscountAmount == 0 && r.PaidAmount == 0 && r.PaymentMode == nil &&
			r.NewCustomer != nil && r.NewCustomer.Phone == "+919800000001"
	})).Return(&saveBooking.Response{Booking: savedBooking(), Created: true}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandleCreate(rec, createRequest(body, 0))

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp bookingModels.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "20:00", resp.EndTime)
	assert.Equal(t, "TKT-ABC", resp.TicketCode)
}

func TestHandleCreate_OwnerPassesMoney(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *saveBooking.Request) bool {
		return r.OwnerID == 100 && r.DiscountAmount == 100 && r.PaidAmount == 500 &&
			r.PaymentMode != nil && *r.PaymentMode == domain.PaymentModeUPI
	})).Return(&saveBooking.Response{Booking: savedBooking(), Created: true}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandleCreate(rec, createRequest(body, 100))

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandleCreate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "slot taken", err: saveBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "slot held", err: saveBooking.ErrSlotHeld, status: http.StatusConflict},
		{name: "slot blocked", err: saveBooking.ErrSlotBlocked, status: http.StatusConflict},
		{name: "venue missing", err: saveBooking.ErrVenueNotFound, status: http.StatusNotFound},
		{name: "midnight", err: saveBooking.ErrCrossesMidnight, status: http.StatusBadRequest},
		{name: "past", err: saveBooking.ErrSlotInPast, status: http.StatusBadRequest},
		{name: "foreign venue", err: saveBooking.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", err: saveBooking.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).HandleCreate(rec, createRequest(body, 0))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandleCreate_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not json", payload: `{`},
		{name: "unknown field", payload: `{"bookingDate":"2026-10-20","startTime":"18:00","durationHours":1,"extra":1}`},
		{name: "duration too long", payload: `{"bookingDate":"2026-10-20","startTime":"18:00","durationHours":5}`},
		{name: "bad date", payload: `{"bookingDate":"20.10.2026","startTime":"18:00","durationHours":1}`},
		{name: "bad time", payload: `{"bookingDate":"2026-10-20","startTime":"6pm","durationHours":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).HandleCreate(rec, createRequest(tt.payload, 0))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *saveBooking.Request) bool {
		return r.BookingID != nil && *r.BookingID == 11 && r.OwnerID == 100
	})).Return(&saveBooking.Response{Booking: savedBooking()}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/11", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "11"})
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandleUpdate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleUpdate_RequiresOwner(t *testing.T) {
	uc := &mockUseCase{}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/bookings/11", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "11"})

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).HandleUpdate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
