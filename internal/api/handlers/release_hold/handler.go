package release_hold

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	holdSlot "github.com/m04kA/SMC-TurfManager/internal/usecase/hold_slot"
)

const (
	msgInvalidToken  = "некорректный токен удержания"
	msgHoldsDisabled = "удержание слотов отключено"
)

type Handler struct {
	useCase HoldReleaser
	logger  Logger
}

func NewHandler(useCase HoldReleaser, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/holds/{token}
// Повторное освобождение не считается ошибкой
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if _, err := uuid.Parse(token); err != nil {
		h.logger.Warn("DELETE /holds/{token} - Invalid token: %v", err)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	if err := h.useCase.Release(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, holdSlot.ErrHoldsDisabled):
			handlers.RespondError(w, http.StatusServiceUnavailable, msgHoldsDisabled)

		case errors.Is(err, holdSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidToken)

		default:
			h.logger.Error("DELETE /holds/{token} - Failed to release hold: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondNoContent(w)
}
