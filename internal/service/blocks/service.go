package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	blockRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/block"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/service/blocks/models"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// Service сервис ручных блокировок площадки
type Service struct {
	blockRepo BlockRepository
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// List блокировки площадки за период
func (s *Service) List(ctx context.Context, venueID, ownerID int64, from, to time.Time) (*models.BlockListResponse, error) {
	s.logger.Info("List: blocks of venue=%d from %s to %s", venueID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidTimeRange)
	}

	if _, err := s.getOwnedVenue(ctx, "List", venueID, ownerID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.ListByVenue(ctx, venueID, from, to)
	if err != nil {
		s.logger.Error("List: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// Create блокирует интервал в пределах часов работы площадки
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: block venue=%d %s %s-%s by owner=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.OwnerID)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLen {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxBlockReasonLen)
	}

	start, end, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	venue, err := s.getOwnedVenue(ctx, "Create", req.VenueID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	open, closeHour := venue.OperatingHours()
	if start.Hour() < open || end.Hour() > closeHour {
		return nil, fmt.Errorf("%w: venue works %02d:00-%02d:00", ErrInvalidTimeRange, open, closeHour)
	}

	created, err := s.blockRepo.Create(ctx, &domain.BlockedSlot{
		VenueID:   venue.ID,
		BlockDate: req.Date,
		StartTime: start,
		EndTime:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// Delete снимает блокировку
func (s *Service) Delete(ctx context.Context, blockID, ownerID int64) error {
	s.logger.Info("Delete: block id=%d by owner=%d", blockID, ownerID)

	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if _, err := s.getOwnedVenue(ctx, "Delete", block.VenueID, ownerID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block id=%d removed", blockID)
	return nil
}

func (s *Service) getOwnedVenue(ctx context.Context, op string, venueID, ownerID int64) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("%s: failed to get venue id=%d: %v", op, venueID, err)
		return nil, fmt.Errorf("%w: %s - failed to get venue: %v", ErrInternal, op, err)
	}

	if !venue.IsOwnedBy(ownerID) {
		s.logger.Warn("%s: owner=%d has no access to venue=%d", op, ownerID, venueID)
		return nil, ErrAccessDenied
	}
	return venue, nil
}

// parseRange целые часы, начало строго раньше конца; конец может быть 24:00 или 00:00
func parseRange(startRaw, endRaw string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startRaw)
	if err != nil {
		return "", "", fmt.Errorf("%w: startTime: %v", ErrInvalidTimeRange, err)
	}
	end, err := types.NewTimeStringFromString(endRaw)
	if err != nil {
		return "", "", fmt.Errorf("%w: endTime: %v", ErrInvalidTimeRange, err)
	}
	if end.Minutes() == 0 {
		end = types.MustFromHour(24)
	}

	if !start.IsHourAligned() || !end.IsHourAligned() {
		return "", "", fmt.Errorf("%w: block must cover whole hours", ErrInvalidTimeRange)
	}
	if !start.IsBefore(end) {
		return "", "", fmt.Errorf("%w: %s-%s", ErrInvalidTimeRange, start, end)
	}
	return start, end, nil
}
