package get_price_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/service/venues"
)

const (
	msgInvalidVenueID  = "некорректный ID площадки"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "длительность должна быть от 1 до 4 часов"
	msgVenueNotFound   = "площадка не найдена"
	msgVenueInactive   = "площадка не принимает бронирования"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/price-quote
// Query params: date (YYYY-MM-DD), duration (часы)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/price-quote - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/price-quote - %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	quote, err := h.service.Quote(r.Context(), venueID, date, duration)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, venues.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, venues.ErrVenueInactive):
			handlers.RespondBadRequest(w, msgVenueInactive)

		default:
			h.logger.Error("GET /venues/{id}/price-quote - Failed to quote: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}
