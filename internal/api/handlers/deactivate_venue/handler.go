package deactivate_venue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/venues"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgVenueNotFound  = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle DELETE /api/v1/venues/{venueId}
// Площадка выключается, брони сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	venueID, err := handlers.PathID(r, "venueId")
	if err != nil {
		h.logger.Warn("DELETE /venues/{id} - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /venues/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Deactivate(r.Context(), venueID, ownerID); err != nil {
		switch {
		case errors.Is(err, venues.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, venues.ErrAccessDenied):
			h.logger.Warn("DELETE /venues/{id} - Access denied: venue_id=%d, owner_id=%d", venueID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /venues/{id} - Failed to deactivate venue: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /venues/{id} - Venue deactivated: venue_id=%d", venueID)
	handlers.RespondNoContent(w)
}
