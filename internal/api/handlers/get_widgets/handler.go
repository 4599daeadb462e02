package get_widgets

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
)

const (
	msgInvalidVenueID    = "некорректный ID площадки"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidCustomerID = "некорректный ID клиента"
	msgVenueNotFound     = "площадка не найдена"
	msgVenueInactive     = "площадка не принимает бронирования"
)

type Handler struct {
	service EngineService
	logger  Logger
}

func NewHandler(service EngineService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/widgets
// Query params: date, visitorId, customerId (опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("GET /venues/{id}/widgets - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()
	req := &models.WidgetsRequest{
		VenueID:   venueID,
		Date:      time.Now(),
		VisitorID: query.Get("visitorId"),
	}

	if query.Get("date") != "" {
		req.Date, err = handlers.QueryDate(r, "date")
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidCustomerID)
			return
		}
		req.CustomerID = &customerID
	}

	result, err := h.service.Widgets(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, engines.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, engines.ErrVenueInactive):
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, engines.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /venues/{id}/widgets - Failed to build widgets: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
