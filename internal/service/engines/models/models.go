package models

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// WidgetsRequest запрос виджетов публичной страницы площадки
type WidgetsRequest struct {
	VenueID    int64
	Date       time.Time
	VisitorID  string // Для A/B-промо
	CustomerID *int64 // Для программы лояльности
}

// EngineDTO настройки одного движка
type EngineDTO struct {
	Kind      string          `json:"kind" validate:"required,oneof=scarcity countdown scratch_card loyalty ab_promo"`
	Enabled   bool            `json:"enabled"`
	Config    json.RawMessage `json:"config" validate:"required"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

// UpsertEnginesRequest запрос на сохранение движков площадки
type UpsertEnginesRequest struct {
	OwnerID int64       `json:"-"`
	VenueID int64       `json:"-"`
	Engines []EngineDTO `json:"engines" validate:"required,min=1,dive"`
}

// EngineListResponse движки площадки
type EngineListResponse struct {
	Engines []EngineDTO `json:"engines"`
}

// Widget интерпретированный движок для отображения.
// Заполняются только поля своего вида
type Widget struct {
	Kind    string `json:"kind"`
	Message string `json:"message,omitempty"`

	AvailableSlots *int `json:"availableSlots,omitempty"`

	NextSlotStart *time.Time `json:"nextSlotStart,omitempty"`
	SecondsLeft   *int       `json:"secondsLeft,omitempty"`

	DiscountPercent *int     `json:"discountPercent,omitempty"`
	MaxDiscount     *float64 `json:"maxDiscount,omitempty"`
	PromoCode       *string  `json:"promoCode,omitempty"`

	CompletedBookings *int    `json:"completedBookings,omitempty"`
	BookingsForReward *int    `json:"bookingsForReward,omitempty"`
	Reward            *string `json:"reward,omitempty"`

	Variant *string `json:"variant,omitempty"`
}

// WidgetsResponse виджеты для даты
type WidgetsResponse struct {
	VenueID int64    `json:"venueId"`
	Date    string   `json:"date"`
	Widgets []Widget `json:"widgets"`
}

// FromDomainEngine конвертирует domain модель в DTO
func FromDomainEngine(e *domain.Engine) (EngineDTO, error) {
	raw, err := domain.EncodeEngineConfig(e.Config)
	if err != nil {
		return EngineDTO{}, err
	}

	dto := EngineDTO{
		Kind:    string(e.Kind),
		Enabled: e.Enabled,
		Config:  raw,
	}
	if !e.UpdatedAt.IsZero() {
		updatedAt := e.UpdatedAt
		dto.UpdatedAt = &updatedAt
	}
	return dto, nil
}

// ToDomainEngine декодирует типизированную конфигурацию по виду движка
func (d EngineDTO) ToDomainEngine(venueID int64) (*domain.Engine, error) {
	kind := domain.EngineKind(d.Kind)

	cfg, err := domain.DecodeEngineConfig(kind, d.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &domain.Engine{
		VenueID: venueID,
		Kind:    kind,
		Enabled: d.Enabled,
		Config:  cfg,
	}, nil
}
