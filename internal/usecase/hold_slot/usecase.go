package hold_slot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
)

// UseCase удержание слотов на время оформления брони.
// Удержание носит рекомендательный характер, конфликт броней решает БД.
type UseCase struct {
	venueRepo    VenueRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	holds        HoldStore
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. holds может быть nil
func NewUseCase(
	venueRepo VenueRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	holds HoldStore,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		holds:        holds,
		timeProvider: &RealTimeProvider{Location: loc},
		logger:       logger,
	}
}

// Execute удерживает свободные часы интервала под новым токеном.
// Занятые, заблокированные и уже начавшиеся часы не удерживаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("HoldSlot: venue=%d, date=%s, time=%s, duration=%dh",
		req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	if uc.holds == nil {
		return nil, ErrHoldsDisabled
	}

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("HoldSlot: validation failed: %v", err)
		return nil, err
	}

	end, err := req.StartTime.AddHours(req.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("HoldSlot: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("HoldSlot: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsActive {
		return nil, ErrVenueInactive
	}

	open, closeHour := venue.OperatingHours()
	if req.StartTime.Hour() < open || end.Hour() > closeHour {
		return nil, ErrOutsideOperatingHours
	}

	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	now := uc.timeProvider.Now()
	startAt := time.Date(date.Year(), date.Month(), date.Day(), req.StartTime.Hour(), 0, 0, 0, now.Location())
	if startAt.Before(now) {
		uc.logger.Warn("HoldSlot: slot %s %s already started", date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrSlotInPast
	}

	if err := uc.checkOccupied(ctx, venue.ID, date, req.StartTime.Hour(), end.Hour()); err != nil {
		return nil, err
	}

	token := uuid.NewString()
	keys := make([]domain.SlotKey, 0, req.DurationHours)
	for h := req.StartTime.Hour(); h < end.Hour(); h++ {
		keys = append(keys, domain.SlotKey{VenueID: venue.ID, Date: date, Hour: h})
	}

	ok, err := uc.holds.Acquire(ctx, token, keys)
	if err != nil {
		uc.logger.Error("HoldSlot: failed to acquire hold: %v", err)
		return nil, fmt.Errorf("%w: failed to acquire hold: %v", ErrInternal, err)
	}
	if !ok {
		uc.logger.Warn("HoldSlot: venue=%d %s %s-%s already held", venue.ID, date.Format(domain.DateFormat), req.StartTime, end)
		return nil, ErrSlotHeld
	}

	expiresAt := uc.timeProvider.Now().Add(uc.holds.TTL())
	uc.logger.Info("HoldSlot: held %d slots until %s", len(keys), expiresAt.Format(time.RFC3339))

	return &Response{Token: token, ExpiresAt: expiresAt}, nil
}

// Release снимает удержание токена
func (uc *UseCase) Release(ctx context.Context, token string) error {
	if uc.holds == nil {
		return ErrHoldsDisabled
	}

	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	if err := uc.holds.Release(ctx, token); err != nil {
		uc.logger.Error("HoldSlot: failed to release token: %v", err)
		return fmt.Errorf("%w: failed to release hold: %v", ErrInternal, err)
	}

	uc.logger.Info("HoldSlot: released token")
	return nil
}

// checkOccupied ни один час [startHour, endHour) не должен быть забронирован или заблокирован
func (uc *UseCase) checkOccupied(ctx context.Context, venueID int64, date time.Time, startHour, endHour int) error {
	bookings, err := uc.bookingRepo.ListByVenue(ctx, domain.VenueBookingsFilter{
		VenueID:   venueID,
		StartDate: date,
		EndDate:   date,
	})
	if err != nil {
		uc.logger.Error("HoldSlot: failed to get bookings for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.ListByVenue(ctx, venueID, date, date)
	if err != nil {
		uc.logger.Error("HoldSlot: failed to get blocks for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	for h := startHour; h < endHour; h++ {
		for _, b := range bookings {
			if b.OccupiesSlot() && b.Covers(date, h) {
				uc.logger.Warn("HoldSlot: %02d:00 at venue=%d is booked by id=%d", h, venueID, b.ID)
				return ErrSlotNotAvailable
			}
		}
		for _, bl := range blocks {
			if bl.Covers(date, h) {
				uc.logger.Warn("HoldSlot: %02d:00 at venue=%d is blocked by id=%d", h, venueID, bl.ID)
				return ErrSlotBlocked
			}
		}
	}
	return nil
}

func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil || !req.StartTime.IsHourAligned() {
		return fmt.Errorf("%w: startTime must be a whole hour", ErrInvalidInput)
	}
	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}
	return nil
}
