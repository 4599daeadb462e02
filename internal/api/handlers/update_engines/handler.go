package update_engines

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines"
	"github.com/m04kA/SMC-TurfManager/internal/service/engines/models"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidEngine      = "некорректная конфигурация движка"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/venues/{venueId}/engines
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpsertEnginesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/engines - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = ownerID
	req.VenueID = venueID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, engines.ErrInvalidEngine), errors.Is(err, engines.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/engines - Invalid engines: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEngine)

		case errors.Is(err, engines.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, engines.ErrAccessDenied):
			h.logger.Warn("PUT /venues/{id}/engines - Access denied: venue_id=%d, owner_id=%d", venueID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /venues/{id}/engines - Failed to save engines: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/engines - Engines saved: venue_id=%d, count=%d", venueID, len(result.Engines))
	handlers.RespondJSON(w, http.StatusOK, result)
}
