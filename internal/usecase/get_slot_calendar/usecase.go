package get_slot_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
)

// UseCase use case недельного календаря слотов площадки
type UseCase struct {
	venueRepo    VenueRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	holds        HoldStore
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case. holds может быть nil, если Redis выключен
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

// Execute вычисляет статусы слотов на неделю, содержащую req.Date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotCalendar: venue=%d, date=%s", req.VenueID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotCalendar: validation failed: %v", err)
		return nil, err
	}

	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetSlotCalendar: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetSlotCalendar: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsActive {
		uc.logger.Warn("GetSlotCalendar: venue id=%d is inactive", req.VenueID)
		return nil, ErrVenueInactive
	}

	start := weekStart(req.Date)
	end := start.AddDate(0, 0, domain.DaysInWeek-1)

	bookings, err := uc.bookingRepo.ListByVenue(ctx, domain.VenueBookingsFilter{
		VenueID:   venue.ID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		uc.logger.Error("GetSlotCalendar: failed to get bookings for venue=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.ListByVenue(ctx, venue.ID, start, end)
	if err != nil {
		uc.logger.Error("GetSlotCalendar: failed to get blocks for venue=%d: %v", venue.ID, err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	holds := uc.loadHolds(ctx, venue, start)
	now := uc.timeProvider.Now()
	days := resolveWeek(venue, start, bookings, blocks, holds, now)

	openHour, closeHour := venue.OperatingHours()
	uc.logger.Info("GetSlotCalendar: venue=%d week %s: %d bookings, %d blocks, %d holds",
		venue.ID, start.Format(domain.DateFormat), len(bookings), len(blocks), len(holds))

	return &Response{
		VenueID:   venue.ID,
		VenueName: venue.Name,
		WeekStart: start,
		WeekEnd:   end,
		OpenHour:  openHour,
		CloseHour: closeHour,
		Days:      days,
	}, nil
}

// loadHolds удержания носят справочный характер: при недоступности Redis календарь строится без них
func (uc *UseCase) loadHolds(ctx context.Context, venue *domain.Venue, start time.Time) map[domain.SlotKey]string {
	if uc.holds == nil {
		return nil
	}

	holds, err := uc.holds.HeldBy(ctx, weekSlotKeys(venue, start))
	if err != nil {
		uc.logger.Warn("GetSlotCalendar: failed to load holds for venue=%d, ignoring: %v", venue.ID, err)
		return nil
	}
	return holds
}
