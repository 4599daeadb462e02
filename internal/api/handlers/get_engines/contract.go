package get_engines

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
)

type EngineService interface {
	List(ctx context.Context, venueID, ownerID int64) (*models.EngineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
