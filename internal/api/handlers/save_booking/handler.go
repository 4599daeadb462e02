package save_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/domain"
	bookingModels "github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
	saveBooking "github.com/m04kA/SMC-TurfManager/internal/usecase/save_booking"
)

const (
	msgInvalidVenueID        = "некорректный ID площадки"
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректная дата (YYYY-MM-DD), время (HH:MM) или способ оплаты"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgVenueNotFound         = "площадка не найдена"
	msgVenueInactive         = "площадка не принимает бронирования"
	msgBookingNotFound       = "бронирование не найдено"
	msgCustomerNotFound      = "клиент не найден"
	msgCustomerRequired      = "укажите клиента или данные нового клиента"
	msgForbidden             = "доступ запрещен"
	msgCrossesMidnight       = "бронирование не может переходить через полночь"
	msgOutsideOperatingHours = "время вне часов работы площадки"
	msgSlotInPast            = "выбранный слот уже прошёл"
	msgSlotBlocked           = "выбранное время заблокировано владельцем"
	msgSlotHeld              = "слот временно удерживается другим клиентом"
	msgSlotNotAvailable      = "выбранный временной слот уже занят"
	msgInvalidInput          = "некорректные данные бронирования"
)

type Handler struct {
	useCase SaveBookingUseCase
	logger  Logger
}

func NewHandler(useCase SaveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/venues/{venueId}/bookings
// Публичный маршрут, X-User-ID опционален (админка владельца)
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const route = "POST /venues/{id}/bookings"

	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("%s - Invalid venue ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Для публичной страницы ownerID = 0
	ownerID, _ := middleware.GetUserID(r.Context())

	useCaseReq, ok := h.decode(w, r, route, ownerID)
	if !ok {
		return
	}
	useCaseReq.VenueID = venueID

	h.execute(w, r, route, useCaseReq)
}

// HandleUpdate PUT /api/v1/bookings/{bookingId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /bookings/{id}"

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", route)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	useCaseReq, ok := h.decode(w, r, route, ownerID)
	if !ok {
		return
	}
	useCaseReq.BookingID = &bookingID

	h.execute(w, r, route, useCaseReq)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, ownerID int64) (*saveBooking.Request, bool) {
	var req SaveBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID)
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}

	return useCaseReq, true
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *saveBooking.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, saveBooking.ErrSlotNotAvailable):
			h.logger.Warn("%s - Slot not available: venue_id=%d, date=%s, start=%s",
				route, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, saveBooking.ErrSlotHeld):
			h.logger.Warn("%s - Slot held: venue_id=%d", route, req.VenueID)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, saveBooking.ErrSlotBlocked):
			h.logger.Warn("%s - Slot blocked: venue_id=%d", route, req.VenueID)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, saveBooking.ErrVenueNotFound):
			h.logger.Warn("%s - Venue not found: venue_id=%d", route, req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, saveBooking.ErrBookingNotFound):
			h.logger.Warn("%s - Booking not found", route)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, saveBooking.ErrCustomerNotFound):
			h.logger.Warn("%s - Customer not found: owner_id=%d", route, req.OwnerID)
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, saveBooking.ErrAccessDenied):
			h.logger.Warn("%s - Access denied: owner_id=%d", route, req.OwnerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, saveBooking.ErrVenueInactive):
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, saveBooking.ErrCustomerRequired):
			handlers.RespondBadRequest(w, msgCustomerRequired)

		case errors.Is(err, saveBooking.ErrCrossesMidnight):
			handlers.RespondBadRequest(w, msgCrossesMidnight)

		case errors.Is(err, saveBooking.ErrOutsideOperatingHours):
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, saveBooking.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, saveBooking.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to save booking: venue_id=%d, owner_id=%d, error=%v",
				route, req.VenueID, req.OwnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}

	h.logger.Info("%s - Booking saved: booking_id=%d, venue_id=%d, created=%t",
		route, result.Booking.ID, result.Booking.VenueID, result.Created)
	handlers.RespondJSON(w, status, bookingModels.FromDomainBooking(result.Booking))
}
