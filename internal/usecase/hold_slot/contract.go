package hold_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListByVenue(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListByVenue(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.BlockedSlot, error)
}

// HoldStore интерфейс хранилища удержаний
type HoldStore interface {
	Acquire(ctx context.Context, token string, slots []domain.SlotKey) (bool, error)
	Release(ctx context.Context, token string) error
	TTL() time.Duration
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider текущее время в часовом поясе площадок
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
