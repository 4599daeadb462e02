package hold_slot

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// Request запрос на удержание слотов
type Request struct {
	VenueID       int64
	Date          time.Time
	StartTime     types.TimeString
	DurationHours int
}

// Response выданное удержание
type Response struct {
	Token     string
	ExpiresAt time.Time
}
