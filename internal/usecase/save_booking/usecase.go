package save_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/customer"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/pkg/metrics"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

const (
	operationCreate = "create"
	operationUpdate = "update"
)

// UseCase use case создания и изменения брони
type UseCase struct {
	venueRepo    VenueRepository
	customerRepo CustomerRepository
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	holds        HoldStore
	locker       Locker
	notifier     Notifier
	txManager    TransactionManager
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger
}

// Options необязательные зависимости. Любое поле может быть nil
type Options struct {
	Holds    HoldStore
	Locker   Locker
	Notifier Notifier
	Metrics  *metrics.Metrics
	Location *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	venueRepo VenueRepository,
	customerRepo CustomerRepository,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	opts Options,
	logger Logger,
) *UseCase {
	return &UseCase{
		venueRepo:    venueRepo,
		customerRepo: customerRepo,
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		holds:        opts.Holds,
		locker:       opts.Locker,
		notifier:     opts.Notifier,
		txManager:    txManager,
		metrics:      opts.Metrics,
		timeProvider: &RealTimeProvider{Location: opts.Location},
		logger:       logger,
	}
}

// Execute создает бронь или перезаписывает существующую.
// Запись выполняется условно в сериализуемой транзакции, проигравший гонку получает ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SaveBooking: booking=%v, owner=%d, venue=%d, date=%s, time=%s, duration=%dh",
		formatID(req.BookingID), req.OwnerID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SaveBooking: validation failed: %v", err)
		return nil, err
	}

	date := dateOnly(req.Date)
	end, err := endTime(req.StartTime, req.DurationHours)
	if err != nil {
		uc.logger.Warn("SaveBooking: %v", err)
		return nil, err
	}

	// 2. Исходная бронь при изменении
	var existing *domain.Booking
	venueID := req.VenueID
	if req.IsUpdate() {
		existing, err = uc.bookingRepo.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("SaveBooking: booking id=%d not found", *req.BookingID)
				return nil, ErrBookingNotFound
			}
			uc.logger.Error("SaveBooking: failed to get booking id=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		venueID = existing.VenueID
	}

	// 3. Площадка
	venue, err := uc.getVenue(ctx, venueID, req.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := validateOperatingHours(venue, req.StartTime, end); err != nil {
		uc.logger.Warn("SaveBooking: %v", err)
		return nil, err
	}

	// 4. Прошедшее время, блокировки и удержания. Правка без смены слота их не проверяет
	if existing == nil || slotChanged(existing, date, req.StartTime, end) {
		// Владелец может внести бронь задним числом (клиент пришёл без записи)
		if req.OwnerID <= 0 {
			if err := validateNotInPast(date, req.StartTime, uc.timeProvider.Now()); err != nil {
				uc.logger.Warn("SaveBooking: slot %s %s already started", date.Format(domain.DateFormat), req.StartTime)
				return nil, err
			}
		}

		if err := uc.checkBlocks(ctx, venue.ID, date, req.StartTime, end); err != nil {
			return nil, err
		}

		keys := slotKeys(venue.ID, date, req.StartTime, end)
		if err := uc.checkHolds(ctx, keys, req.HoldToken); err != nil {
			return nil, err
		}
	}

	// 5. Клиент. Создаётся вне транзакции брони: при ошибке записи брони клиент остаётся
	customer, err := uc.resolveCustomer(ctx, venue.OwnerID, req)
	if err != nil {
		return nil, err
	}

	// 6. Мьютекс площадки на дату
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, venue.ID, date)
		if err != nil {
			uc.logger.Error("SaveBooking: failed to lock venue=%d date=%s: %v", venue.ID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to lock venue: %v", ErrInternal, err)
		}
		defer unlock()
	}

	booking := buildBooking(req, existing, venue, customer, date, end)

	// 7. Условная запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if existing == nil {
			created, err := uc.bookingRepo.Create(txCtx, booking)
			if err != nil {
				return err
			}
			booking = created
			return nil
		}
		return uc.bookingRepo.Update(txCtx, booking)
	})

	operation := operationCreate
	if existing != nil {
		operation = operationUpdate
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotNotAvailable) || bookingRepo.IsSlotConflict(err) {
			uc.logger.Warn("SaveBooking: slot %s %s-%s at venue=%d is taken",
				date.Format(domain.DateFormat), req.StartTime, end, venue.ID)
			if uc.metrics != nil {
				uc.metrics.BookingConflicts.Inc()
			}
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SaveBooking: failed to %s booking: %v", operation, err)
		return nil, fmt.Errorf("%w: failed to %s booking: %v", ErrInternal, operation, err)
	}

	if uc.metrics != nil {
		uc.metrics.BookingsSaved.WithLabelValues(operation).Inc()
	}

	uc.releaseHold(ctx, req.HoldToken)
	uc.notify(venue, booking, existing == nil)

	uc.logger.Info("SaveBooking: %s booking id=%d, ticket=%s, total=%.2f, payment=%s",
		operation, booking.ID, booking.TicketCode, booking.TotalAmount, booking.PaymentStatus)

	return &Response{Booking: booking, Created: existing == nil}, nil
}

// getVenue загружает активную площадку и проверяет владельца, если он указан
func (uc *UseCase) getVenue(ctx context.Context, venueID, ownerID int64) (*domain.Venue, error) {
	venue, err := uc.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("SaveBooking: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("SaveBooking: failed to get venue id=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	if ownerID > 0 && !venue.IsOwnedBy(ownerID) {
		uc.logger.Warn("SaveBooking: owner=%d has no access to venue=%d", ownerID, venueID)
		return nil, ErrAccessDenied
	}

	if !venue.IsActive {
		uc.logger.Warn("SaveBooking: venue id=%d is inactive", venueID)
		return nil, ErrVenueInactive
	}

	return venue, nil
}

func (uc *UseCase) checkBlocks(ctx context.Context, venueID int64, date time.Time, start, end types.TimeString) error {
	blocks, err := uc.blockRepo.ListByVenue(ctx, venueID, date, date)
	if err != nil {
		uc.logger.Error("SaveBooking: failed to get blocks for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	if bl := findBlock(blocks, date, start, end); bl != nil {
		uc.logger.Warn("SaveBooking: slot %s-%s overlaps block id=%d", start, end, bl.ID)
		return ErrSlotBlocked
	}
	return nil
}

// checkHolds слот, удерживаемый чужим токеном, недоступен. Недоступность Redis бронь не блокирует
func (uc *UseCase) checkHolds(ctx context.Context, keys []domain.SlotKey, token *string) error {
	if uc.holds == nil {
		return nil
	}

	held, err := uc.holds.HeldBy(ctx, keys)
	if err != nil {
		uc.logger.Warn("SaveBooking: failed to check holds, ignoring: %v", err)
		return nil
	}

	for _, key := range keys {
		owner, ok := held[key]
		if !ok {
			continue
		}
		if token == nil || owner != *token {
			uc.logger.Warn("SaveBooking: slot %s %02d:00 is held", key.Date.Format(domain.DateFormat), key.Hour)
			return ErrSlotHeld
		}
	}
	return nil
}

// resolveCustomer существующий клиент владельца или новый; новый с известным телефоном переиспользуется
func (uc *UseCase) resolveCustomer(ctx context.Context, ownerID int64, req *Request) (*domain.Customer, error) {
	if req.CustomerID != nil {
		customer, err := uc.customerRepo.GetByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("SaveBooking: customer id=%d not found", *req.CustomerID)
				return nil, ErrCustomerNotFound
			}
			uc.logger.Error("SaveBooking: failed to get customer id=%d: %v", *req.CustomerID, err)
			return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}
		if customer.OwnerID != ownerID {
			uc.logger.Warn("SaveBooking: customer id=%d belongs to another owner", customer.ID)
			return nil, ErrCustomerNotFound
		}
		return customer, nil
	}

	phone := strings.TrimSpace(req.NewCustomer.Phone)
	customer, err := uc.customerRepo.FindByPhone(ctx, ownerID, phone)
	if err == nil {
		uc.logger.Info("SaveBooking: reusing customer id=%d by phone", customer.ID)
		return customer, nil
	}
	if !errors.Is(err, customerRepo.ErrCustomerNotFound) {
		uc.logger.Error("SaveBooking: failed to find customer by phone: %v", err)
		return nil, fmt.Errorf("%w: failed to find customer: %v", ErrInternal, err)
	}

	customer, err = uc.customerRepo.Create(ctx, &domain.Customer{
		OwnerID: ownerID,
		Name:    strings.TrimSpace(req.NewCustomer.Name),
		Phone:   phone,
		Email:   req.NewCustomer.Email,
	})
	if err != nil {
		uc.logger.Error("SaveBooking: failed to create customer: %v", err)
		return nil, fmt.Errorf("%w: failed to create customer: %v", ErrInternal, err)
	}

	uc.logger.Info("SaveBooking: created customer id=%d", customer.ID)
	return customer, nil
}

func (uc *UseCase) releaseHold(ctx context.Context, token *string) {
	if uc.holds == nil || token == nil {
		return
	}
	if err := uc.holds.Release(ctx, *token); err != nil {
		uc.logger.Warn("SaveBooking: failed to release hold: %v", err)
	}
}

func (uc *UseCase) notify(venue *domain.Venue, booking *domain.Booking, created bool) {
	if uc.notifier == nil {
		return
	}
	if created {
		uc.notifier.BookingCreated(venue, booking)
		return
	}
	uc.notifier.BookingChanged(events.BookingUpdated, booking)
}

// buildBooking собирает бронь. При изменении сохраняются статус, код билета и дата создания
func buildBooking(
	req *Request,
	existing *domain.Booking,
	venue *domain.Venue,
	customer *domain.Customer,
	date time.Time,
	end types.TimeString,
) *domain.Booking {
	booking := &domain.Booking{
		VenueID:        venue.ID,
		CustomerID:     customer.ID,
		BookingDate:    date,
		StartTime:      req.StartTime,
		EndTime:        end,
		DurationHours:  req.DurationHours,
		Status:         domain.StatusBooked,
		DiscountAmount: req.DiscountAmount,
		AdvanceAmount:  req.AdvanceAmount,
		PaidAmount:     req.PaidAmount,
		PaymentMode:    req.PaymentMode,
		TicketCode:     domain.NewTicketCode(),
		Notes:          req.Notes,
		CustomerName:   customer.Name,
		CustomerPhone:  &customer.Phone,
	}

	if existing != nil {
		booking.ID = existing.ID
		booking.Status = existing.Status
		booking.TicketCode = existing.TicketCode
		booking.CreatedAt = existing.CreatedAt
	}

	booking.TotalAmount = calculateTotal(venue.Tariff, req.DurationHours, date, req.DiscountAmount)
	booking.ApplyPayments()

	return booking
}

// slotChanged true, если изменение переносит бронь на другое время
func slotChanged(existing *domain.Booking, date time.Time, start, end types.TimeString) bool {
	return !domain.SameDate(existing.BookingDate, date) || existing.StartTime != start || existing.EndTime != end
}

func formatID(id *int64) string {
	if id == nil {
		return "new"
	}
	return fmt.Sprintf("%d", *id)
}
