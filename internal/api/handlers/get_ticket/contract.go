package get_ticket

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
)

type BookingService interface {
	Ticket(ctx context.Context, id int64, ownerID int64) (*models.TicketResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
