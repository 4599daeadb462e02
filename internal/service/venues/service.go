package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/service/venues/models"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// Service сервис для работы с площадками и их тарифами
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// Create создает площадку владельца
func (s *Service) Create(ctx context.Context, req *models.CreateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Create: creating venue %q for owner=%d", req.Name, req.OwnerID)

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	openAt, closeAt, err := parseHours(req.OpenTime, req.CloseTime)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	if err := validateTariff(req.Tariff); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	created, err := s.venueRepo.Create(ctx, req.ToDomainVenue(openAt, closeAt))
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created venue id=%d", created.ID)
	return models.FromDomainVenue(created), nil
}

// GetByID получает площадку по ID
// Публичный метод - доступен всем
func (s *Service) GetByID(ctx context.Context, id int64) (*models.VenueResponse, error) {
	s.logger.Info("GetByID: fetching venue id=%d", id)

	venue, err := s.getVenue(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainVenue(venue), nil
}

// ListByOwner площадки владельца, включая деактивированные
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) (*models.VenueListResponse, error) {
	s.logger.Info("ListByOwner: fetching venues for owner=%d", ownerID)

	venues, err := s.venueRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("ListByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByOwner: fetched %d venues for owner=%d", len(venues), ownerID)
	return models.FromDomainVenueList(venues), nil
}

// Update частично обновляет площадку. Доступно только владельцу
func (s *Service) Update(ctx context.Context, venueID int64, req *models.UpdateVenueRequest) (*models.VenueResponse, error) {
	s.logger.Info("Update: updating venue id=%d by owner=%d", venueID, req.OwnerID)

	venue, err := s.getOwnedVenue(ctx, "Update", venueID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		venue.Name = *req.Name
	}
	if req.Location != nil {
		venue.Location = req.Location
	}

	openRaw, closeRaw := venue.OpenTime.String(), venue.CloseTime.String()
	if req.OpenTime != nil {
		openRaw = *req.OpenTime
	}
	if req.CloseTime != nil {
		closeRaw = *req.CloseTime
	}
	venue.OpenTime, venue.CloseTime, err = parseHours(openRaw, closeRaw)
	if err != nil {
		s.logger.Warn("Update: %v", err)
		return nil, err
	}

	if req.Tariff != nil {
		if err := validateTariff(*req.Tariff); err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, err
		}
		venue.Tariff = req.Tariff.ToDomainTariff()
	}

	updated, err := s.venueRepo.Update(ctx, venue)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: repository error for venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated venue id=%d", venueID)
	return models.FromDomainVenue(updated), nil
}

// Deactivate выключает площадку. Брони сохраняются, новые не принимаются
func (s *Service) Deactivate(ctx context.Context, venueID, ownerID int64) error {
	s.logger.Info("Deactivate: venue id=%d by owner=%d", venueID, ownerID)

	if _, err := s.getOwnedVenue(ctx, "Deactivate", venueID, ownerID); err != nil {
		return err
	}

	if err := s.venueRepo.SetActive(ctx, venueID, false); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return ErrVenueNotFound
		}
		s.logger.Error("Deactivate: repository error for venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: venue id=%d deactivated", venueID)
	return nil
}

// Quote рассчитывает стоимость брони по тарифу площадки
func (s *Service) Quote(ctx context.Context, venueID int64, date time.Time, durationHours int) (*models.PriceQuoteResponse, error) {
	s.logger.Info("Quote: venue id=%d, date=%s, duration=%dh", venueID, date.Format(domain.DateFormat), durationHours)

	if durationHours < domain.MinDurationHours || durationHours > domain.MaxDurationHours {
		return nil, fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	venue, err := s.getVenue(ctx, "Quote", venueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsActive {
		return nil, ErrVenueInactive
	}

	return &models.PriceQuoteResponse{
		VenueID:       venue.ID,
		Date:          date.Format(domain.DateFormat),
		DurationHours: durationHours,
		IsWeekend:     domain.IsWeekend(date),
		Amount:        venue.Tariff.Price(durationHours, date),
	}, nil
}

func (s *Service) getVenue(ctx context.Context, op string, id int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, id)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: repository error for venue id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return venue, nil
}

// getOwnedVenue загружает площадку и проверяет, что она принадлежит владельцу
func (s *Service) getOwnedVenue(ctx context.Context, op string, id, ownerID int64) (*domain.Venue, error) {
	venue, err := s.getVenue(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if !venue.IsOwnedBy(ownerID) {
		s.logger.Warn("%s: owner=%d has no access to venue id=%d", op, ownerID, id)
		return nil, ErrAccessDenied
	}
	return venue, nil
}

// parseHours часы работы целые, закрытие строго позже открытия (00:00 = 24:00)
func parseHours(openRaw, closeRaw string) (types.TimeString, types.TimeString, error) {
	openAt, err := types.NewTimeStringFromString(openRaw)
	if err != nil {
		return "", "", fmt.Errorf("%w: openTime: %v", ErrInvalidHours, err)
	}
	closeAt, err := types.NewTimeStringFromString(closeRaw)
	if err != nil {
		return "", "", fmt.Errorf("%w: closeTime: %v", ErrInvalidHours, err)
	}
	if !openAt.IsHourAligned() || !closeAt.IsHourAligned() {
		return "", "", fmt.Errorf("%w: hours must be whole", ErrInvalidHours)
	}

	v := domain.Venue{OpenTime: openAt, CloseTime: closeAt}
	start, end := v.OperatingHours()
	if start >= end {
		return "", "", fmt.Errorf("%w: %s-%s", ErrInvalidHours, openAt, closeAt)
	}

	return openAt, closeAt, nil
}

func validateTariff(t models.TariffDTO) error {
	if t.BasePrice <= 0 {
		return fmt.Errorf("%w: basePrice must be positive", ErrInvalidTariff)
	}
	for _, p := range []*float64{t.Price1h, t.Price2h, t.Price3h, t.WeekdayPrice, t.WeekendPrice} {
		if p != nil && *p <= 0 {
			return fmt.Errorf("%w: optional prices must be positive", ErrInvalidTariff)
		}
	}
	return nil
}
