package get_slot_calendar

import (
	"context"

	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
)

type GetSlotCalendarUseCase interface {
	Execute(ctx context.Context, req *getSlotCalendar.Request) (*getSlotCalendar.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
