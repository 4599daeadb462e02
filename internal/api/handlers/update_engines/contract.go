package update_engines

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
)

type EngineService interface {
	Upsert(ctx context.Context, req *models.UpsertEnginesRequest) (*models.EngineListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
