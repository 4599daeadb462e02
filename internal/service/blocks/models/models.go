package models

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// CreateBlockRequest запрос на блокировку интервала площадки
type CreateBlockRequest struct {
	OwnerID   int64     `json:"-"`
	VenueID   int64     `json:"-"`
	Date      time.Time `json:"-"`
	StartTime string    `json:"startTime" validate:"required"`
	EndTime   string    `json:"endTime" validate:"required"`
	Reason    *string   `json:"reason,omitempty" validate:"omitempty,max=250"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venueId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.BlockedSlot) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		VenueID:   b.VenueID,
		Date:      b.BlockDate.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.BlockedSlot) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
