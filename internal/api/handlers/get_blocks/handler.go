package get_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/api/middleware"
	"github.com/m04kA/SMC-TurfManager/internal/service/blocks"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса, ожидаются from и to в формате YYYY-MM-DD"
	msgVenueNotFound  = "площадка не найдена"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/venues/{venueId}/blocks
// Query params: from, to
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

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), venueID, ownerID, from, to)
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, blocks.ErrVenueNotFound):
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, blocks.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/blocks - Access denied: venue_id=%d, owner_id=%d", venueID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /venues/{id}/blocks - Failed to list blocks: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
