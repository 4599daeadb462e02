package models

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// Request модели

// TariffDTO тариф площадки. Пакетные и дневные цены опциональны
type TariffDTO struct {
	BasePrice    float64  `json:"basePrice" validate:"gt=0"`
	Price1h      *float64 `json:"price1h,omitempty" validate:"omitempty,gt=0"`
	Price2h      *float64 `json:"price2h,omitempty" validate:"omitempty,gt=0"`
	Price3h      *float64 `json:"price3h,omitempty" validate:"omitempty,gt=0"`
	WeekdayPrice *float64 `json:"weekdayPrice,omitempty" validate:"omitempty,gt=0"`
	WeekendPrice *float64 `json:"weekendPrice,omitempty" validate:"omitempty,gt=0"`
}

// CreateVenueRequest запрос на создание площадки
type CreateVenueRequest struct {
	OwnerID   int64     `json:"-"`
	Name      string    `json:"name" validate:"required,max=200"`
	Location  *string   `json:"location,omitempty" validate:"omitempty,max=500"`
	OpenTime  string    `json:"openTime" validate:"required"`  // "06:00"
	CloseTime string    `json:"closeTime" validate:"required"` // "00:00" = полночь
	Tariff    TariffDTO `json:"tariff"`
}

// UpdateVenueRequest запрос на обновление площадки
// Все поля опциональны - обновляются только переданные значения
type UpdateVenueRequest struct {
	OwnerID   int64      `json:"-"`
	Name      *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location  *string    `json:"location,omitempty" validate:"omitempty,max=500"`
	OpenTime  *string    `json:"openTime,omitempty"`
	CloseTime *string    `json:"closeTime,omitempty"`
	Tariff    *TariffDTO `json:"tariff,omitempty"`
}

// Response модели

// VenueResponse ответ с данными площадки
type VenueResponse struct {
	ID                  int64     `json:"id"`
	OwnerID             int64     `json:"ownerId"`
	Name                string    `json:"name"`
	Location            *string   `json:"location,omitempty"`
	OpenTime            string    `json:"openTime"`
	CloseTime           string    `json:"closeTime"`
	SlotDurationMinutes int       `json:"slotDurationMinutes"`
	Tariff              TariffDTO `json:"tariff"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// VenueListResponse ответ со списком площадок
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
}

// PriceQuoteResponse расчёт стоимости до создания брони
type PriceQuoteResponse struct {
	VenueID       int64   `json:"venueId"`
	Date          string  `json:"date"`
	DurationHours int     `json:"durationHours"`
	IsWeekend     bool    `json:"isWeekend"`
	Amount        float64 `json:"amount"`
}

// Методы конвертации

// ToDomainTariff конвертирует DTO в domain модель
func (t TariffDTO) ToDomainTariff() domain.Tariff {
	return domain.Tariff{
		BasePrice:    t.BasePrice,
		Price1h:      t.Price1h,
		Price2h:      t.Price2h,
		Price3h:      t.Price3h,
		WeekdayPrice: t.WeekdayPrice,
		WeekendPrice: t.WeekendPrice,
	}
}

// FromDomainTariff конвертирует domain модель в DTO
func FromDomainTariff(t domain.Tariff) TariffDTO {
	return TariffDTO{
		BasePrice:    t.BasePrice,
		Price1h:      t.Price1h,
		Price2h:      t.Price2h,
		Price3h:      t.Price3h,
		WeekdayPrice: t.WeekdayPrice,
		WeekendPrice: t.WeekendPrice,
	}
}

// ToDomainVenue конвертирует запрос в domain модель
func (r *CreateVenueRequest) ToDomainVenue(openAt, closeAt types.TimeString) *domain.Venue {
	return &domain.Venue{
		OwnerID:             r.OwnerID,
		Name:                r.Name,
		Location:            r.Location,
		OpenTime:            openAt,
		CloseTime:           closeAt,
		SlotDurationMinutes: domain.SlotDurationMinutes,
		Tariff:              r.Tariff.ToDomainTariff(),
		IsActive:            true,
	}
}

// FromDomainVenue конвертирует domain модель в DTO
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	if v == nil {
		return nil
	}

	return &VenueResponse{
		ID:                  v.ID,
		OwnerID:             v.OwnerID,
		Name:                v.Name,
		Location:            v.Location,
		OpenTime:            v.OpenTime.String(),
		CloseTime:           v.CloseTime.String(),
		SlotDurationMinutes: v.SlotDurationMinutes,
		Tariff:              FromDomainTariff(v.Tariff),
		IsActive:            v.IsActive,
		CreatedAt:           v.CreatedAt,
		UpdatedAt:           v.UpdatedAt,
	}
}

// FromDomainVenueList конвертирует список domain моделей в DTO
func FromDomainVenueList(venues []*domain.Venue) *VenueListResponse {
	result := make([]VenueResponse, 0, len(venues))
	for _, v := range venues {
		result = append(result, *FromDomainVenue(v))
	}
	return &VenueListResponse{Venues: result}
}
