package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/bookings"
	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
	"github.com/m04kA/SMC-TurfManager/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingResponse), args.Error(1)
}

func newRequest(body string, ownerID int64) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/5/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "5"})
	if ownerID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), ownerID))
	}
	return req
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("UpdateStatus", mock.Anything, int64(5), &models.UpdateStatusRequest{OwnerID: 100, Status: "cancelled"}).
		Return(&models.BookingResponse{ID: 5, Status: "cancelled"}, nil)

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(`{"status":"cancelled"}`, 100))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		ownerID int64
		svcErr  error
		status  int
	}{
		{name: "no owner", body: `{"status":"cancelled"}`, status: http.StatusUnauthorized},
		{name: "unknown status", body: `{"status":"paused"}`, ownerID: 100, status: http.StatusBadRequest},
		{name: "not found", body: `{"status":"booked"}`, ownerID: 100, svcErr: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "foreign", body: `{"status":"booked"}`, ownerID: 100, svcErr: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "restore into taken slot", body: `{"status":"booked"}`, ownerID: 100, svcErr: bookings.ErrSlotNotAvailable, status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("UpdateStatus", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			rec := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(rec, newRequest(tt.body, tt.ownerID))

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
