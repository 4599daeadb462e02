package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/blocks"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeRange   = "некорректный интервал, ожидаются целые часы в пределах часов работы"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/blocks
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

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(venueID, ownerID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	block, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidTimeRange), errors.Is(err, blocks.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, blocks.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("POST /venues/{id}/blocks - Access denied: venue_id=%d, owner_id=%d", venueID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /venues/{id}/blocks - Failed to create block: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/blocks - Block created: block_id=%d, venue_id=%d", block.ID, venueID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
