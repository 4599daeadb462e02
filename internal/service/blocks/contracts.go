package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.BlockedSlot, error)
	ListByVenue(ctx context.Context, venueID int64, from, to time.Time) ([]*domain.BlockedSlot, error)
	Delete(ctx context.Context, id int64) error
}

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
