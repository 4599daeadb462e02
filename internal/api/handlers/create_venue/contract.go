package create_venue

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/venues/models"
)

type VenueService interface {
	Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
