package engines

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
)

// EngineRepository интерфейс репозитория движков
type EngineRepository interface {
	ListByVenue(ctx context.Context, venueID int64) ([]*domain.Engine, error)
	Upsert(ctx context.Context, engine *domain.Engine) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// BookingCounter интерфейс подсчёта завершённых броней клиента
type BookingCounter interface {
	CountCompleted(ctx context.Context, venueID, customerID int64) (int, error)
}

// SlotCalendar интерфейс календаря слотов
type SlotCalendar interface {
	Execute(ctx context.Context, req *getSlotCalendar.Request) (*getSlotCalendar.Response, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
