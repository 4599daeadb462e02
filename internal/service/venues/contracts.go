package venues

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// VenueRepository интерфейс репозитория площадок
type VenueRepository interface {
	Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	GetByID(ctx context.Context, id int64) (*domain.Venue, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Venue, error)
	Update(ctx context.Context, venue *domain.Venue) (*domain.Venue, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
