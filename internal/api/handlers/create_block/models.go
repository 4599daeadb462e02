package create_block

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/internal/service/blocks/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date      string  `json:"date" validate:"required"`      // "2026-10-20"
	StartTime string  `json:"startTime" validate:"required"` // "14:00"
	EndTime   string  `json:"endTime" validate:"required"`   // "00:00" = до полуночи
	Reason    *string `json:"reason,omitempty" validate:"omitempty,max=250"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(venueID, ownerID int64) (*models.CreateBlockRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateBlockRequest{
		OwnerID:   ownerID,
		VenueID:   venueID,
		Date:      date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Reason:    r.Reason,
	}, nil
}
