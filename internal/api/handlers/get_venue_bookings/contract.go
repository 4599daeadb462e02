package get_venue_bookings

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
)

type BookingService interface {
	ListByVenue(ctx context.Context, req *models.ListVenueBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
