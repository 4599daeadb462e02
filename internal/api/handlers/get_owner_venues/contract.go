package get_owner_venues

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/venues/models"
)

type VenueService interface {
	ListByOwner(ctx context.Context, ownerID int64) (*models.VenueListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
