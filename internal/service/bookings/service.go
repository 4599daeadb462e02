package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-TurfManager/internal/infra/storage/venue"
	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
)

// maxListRangeDays максимальная длина периода выборки
const maxListRangeDays = 92

// Service сервис администрирования бронирований владельцем
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	txManager   TransactionManager
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований. notifier может быть nil
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		txManager:   txManager,
		notifier:    notifier,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Доступно только владельцу площадки
func (s *Service) GetByID(ctx context.Context, id int64, ownerID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for owner=%d", id, ownerID)

	booking, err := s.getOwnedBooking(ctx, "GetByID", id, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// ListByVenue брони площадки за период, опционально по статусу
func (s *Service) ListByVenue(ctx context.Context, req *models.ListVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByVenue: venue=%d, owner=%d, period=%s to %s",
		req.VenueID, req.OwnerID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidTimeRange)
	}
	if req.To.Sub(req.From).Hours() > maxListRangeDays*24 {
		return nil, fmt.Errorf("%w: period longer than %d days", ErrInvalidTimeRange, maxListRangeDays)
	}

	if err := s.checkVenueOwner(ctx, "ListByVenue", req.VenueID, req.OwnerID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByVenue: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.ListByVenue(ctx, filter)
	if err != nil {
		s.logger.Error("ListByVenue: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: ListByVenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByVenue: fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus устанавливает статус брони. Переходы не ограничены,
// но возврат отменённой брони проходит проверку пересечения в БД
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by owner=%d", id, req.Status, req.OwnerID)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var booking *domain.Booking
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := s.getOwnedBooking(txCtx, "UpdateStatus", id, req.OwnerID)
		if err != nil {
			return err
		}

		if b.Status == status {
			booking = b
			return nil
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, status); err != nil {
			return err
		}

		b.Status = status
		booking = b
		return nil
	})

	if err != nil {
		return nil, s.mapWriteError("UpdateStatus", id, err)
	}

	s.notifyChanged(events.BookingStatusChanged, booking)

	s.logger.Info("UpdateStatus: booking id=%d is now %s", id, status)
	return models.FromDomainBooking(booking), nil
}

// RecordPayment добавляет оплату и пересчитывает остаток и статус оплаты
func (s *Service) RecordPayment(ctx context.Context, id int64, req *models.RecordPaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("RecordPayment: booking id=%d, amount=%.2f by owner=%d", id, req.Amount, req.OwnerID)

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	var mode *domain.PaymentMode
	if req.PaymentMode != nil {
		m, err := models.ToDomainPaymentMode(*req.PaymentMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		mode = &m
	}

	var booking *domain.Booking
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.getOwnedBooking(txCtx, "RecordPayment", id, req.OwnerID)
		if err != nil {
			return err
		}

		if b.IsCancelled() {
			s.logger.Warn("RecordPayment: booking id=%d is cancelled", id)
			return ErrBookingCancelled
		}

		b.PaidAmount += req.Amount
		if mode != nil {
			b.PaymentMode = mode
		}
		b.ApplyPayments()

		if err := s.bookingRepo.UpdatePayment(txCtx, b); err != nil {
			return err
		}

		booking = b
		return nil
	})

	if err != nil {
		return nil, s.mapWriteError("RecordPayment", id, err)
	}

	s.notifyChanged(events.BookingPaymentAdded, booking)

	s.logger.Info("RecordPayment: booking id=%d payment=%s, pending=%.2f", id, booking.PaymentStatus, booking.PendingAmount)
	return models.FromDomainBooking(booking), nil
}

// Ticket возвращает билет брони и строку для QR-кода
func (s *Service) Ticket(ctx context.Context, id int64, ownerID int64) (*models.TicketResponse, error) {
	s.logger.Info("Ticket: booking id=%d for owner=%d", id, ownerID)

	booking, err := s.getOwnedBooking(ctx, "Ticket", id, ownerID)
	if err != nil {
		return nil, err
	}

	ticket := domain.TicketFor(booking)
	payload, err := json.Marshal(ticket)
	if err != nil {
		s.logger.Error("Ticket: failed to encode ticket for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Ticket - encode: %v", ErrInternal, err)
	}

	return &models.TicketResponse{Ticket: ticket, Payload: string(payload)}, nil
}

// getOwnedBooking загружает бронь и проверяет, что площадка принадлежит владельцу
func (s *Service) getOwnedBooking(ctx context.Context, op string, id, ownerID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if err := s.checkVenueOwner(ctx, op, booking.VenueID, ownerID); err != nil {
		return nil, err
	}

	return booking, nil
}

// checkVenueOwner проверяет, что площадка принадлежит владельцу
func (s *Service) checkVenueOwner(ctx context.Context, op string, venueID, ownerID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("%s: venue id=%d not found", op, venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("%s: failed to get venue id=%d: %v", op, venueID, err)
		return fmt.Errorf("%w: %s - failed to get venue: %v", ErrInternal, op, err)
	}

	if !venue.IsOwnedBy(ownerID) {
		s.logger.Warn("%s: owner=%d has no access to venue=%d", op, ownerID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// mapWriteError переводит ошибки записи в ошибки сервиса
func (s *Service) mapWriteError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrVenueNotFound),
		errors.Is(err, ErrAccessDenied), errors.Is(err, ErrBookingCancelled),
		errors.Is(err, ErrInternal):
		return err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable), bookingRepo.IsSlotConflict(err):
		s.logger.Warn("%s: booking id=%d overlaps another booking", op, id)
		return ErrSlotNotAvailable
	default:
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) notifyChanged(eventType events.EventType, booking *domain.Booking) {
	if s.notifier != nil {
		s.notifier.BookingChanged(eventType, booking)
	}
}
