package hold_slot

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	holdSlot "github.com/m04kA/SMC-TurfManager/internal/usecase/hold_slot"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// HoldRequest HTTP request model
type HoldRequest struct {
	Date          string `json:"date" validate:"required"`      // "2026-10-20"
	StartTime     string `json:"startTime" validate:"required"` // "18:00"
	DurationHours int    `json:"durationHours" validate:"min=1,max=4"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *HoldRequest) ToUseCaseRequest(venueID int64) (*holdSlot.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &holdSlot.Request{
		VenueID:       venueID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
	}, nil
}
