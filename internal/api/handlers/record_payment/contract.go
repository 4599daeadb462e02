package record_payment

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
)

type BookingService interface {
	RecordPayment(ctx context.Context, id int64, req *models.RecordPaymentRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
