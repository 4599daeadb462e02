package create_venue

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/venues"
	"github.com/m04kA/SMC-TurfManager/internal/service/venues/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidHours       = "некорректные часы работы, ожидается HH:00"
	msgInvalidTariff      = "некорректный тариф"
	msgInvalidInput       = "некорректные данные площадки"
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

// Handle POST /api/v1/venues
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /venues - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateVenueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = ownerID

	venue, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, venues.ErrInvalidHours):
			handlers.RespondBadRequest(w, msgInvalidHours)

		case errors.Is(err, venues.ErrInvalidTariff):
			handlers.RespondBadRequest(w, msgInvalidTariff)

		case errors.Is(err, venues.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /venues - Failed to create venue: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues - Venue created: venue_id=%d, owner_id=%d", venue.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, venue)
}
