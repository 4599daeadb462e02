package get_price_quote

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/service/venues/models"
)

type VenueService interface {
	Quote(ctx context.Context, venueID int64, date time.Time, durationHours int) (*models.PriceQuoteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
