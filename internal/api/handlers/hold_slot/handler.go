package hold_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	holdSlot "github.com/m04kA/SMC-TurfManager/internal/usecase/hold_slot"
)

const (
	msgInvalidVenueID        = "некорректный ID площадки"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgHoldsDisabled         = "удержание слотов отключено"
	msgVenueNotFound         = "площадка не найдена"
	msgVenueInactive         = "площадка не принимает бронирования"
	msgOutsideOperatingHours = "время вне часов работы площадки"
	msgSlotHeld              = "слот временно удерживается другим клиентом"
	msgSlotNotAvailable      = "слот уже забронирован"
	msgSlotBlocked           = "слот закрыт владельцем площадки"
	msgSlotInPast            = "слот уже начался"
	msgInvalidInput          = "некорректные параметры удержания"
)

type Handler struct {
	useCase HoldSlotUseCase
	logger  Logger
}

func NewHandler(useCase HoldSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("POST /venues/{id}/holds - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	var req HoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(venueID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, holdSlot.ErrSlotHeld):
			h.logger.Warn("POST /venues/{id}/holds - Slot held: venue_id=%d", venueID)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, holdSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /venues/{id}/holds - Slot booked: venue_id=%d", venueID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, holdSlot.ErrSlotBlocked):
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, holdSlot.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, holdSlot.ErrHoldsDisabled):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgHoldsDisabled)

		case errors.Is(err, holdSlot.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, holdSlot.ErrVenueInactive):
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, holdSlot.ErrOutsideOperatingHours):
			handlers.RespondBadRequest(w, msgOutsideOperatingHours)

		case errors.Is(err, holdSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /venues/{id}/holds - Failed to hold slots: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/holds - Slots held: venue_id=%d, expires_at=%s", venueID, result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, HoldResponse{Token: result.Token, ExpiresAt: result.ExpiresAt})
}
