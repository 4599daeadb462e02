package get_widgets

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
)

type EngineService interface {
	Widgets(ctx context.Context, req *models.WidgetsRequest) (*models.WidgetsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
