package get_slot_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/domain"
	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgVenueNotFound  = "площадка не найдена"
	msgVenueInactive  = "площадка не принимает бронирования"
)

type Handler struct {
	useCase GetSlotCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/calendar
// Query params: date (любой день недели, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/calendar - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date := time.Now()
	if r.URL.Query().Get("date") != "" {
		date, err = handlers.QueryDate(r, "date")
		if err != nil {
			h.logger.Warn("GET /venues/{id}/calendar - %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getSlotCalendar.Request{VenueID: venueID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getSlotCalendar.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/calendar - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getSlotCalendar.ErrVenueInactive):
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, getSlotCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/calendar - Failed to build calendar: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/calendar - Calendar built: venue_id=%d, week=%s",
		venueID, result.WeekStart.Format(domain.DateFormat))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
