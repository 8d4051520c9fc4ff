package get_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetupService/internal/service/events"
)

const (
	msgMissingShortCode = "короткий код события обязателен"
	msgEventNotFound    = "событие не найдено"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{shortCode}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]
	if shortCode == "" {
		h.logger.Warn("GET /events/{shortCode} - Missing short code")
		handlers.RespondBadRequest(w, msgMissingShortCode)
		return
	}

	result, err := h.service.GetByShortCode(r.Context(), shortCode)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("GET /events/{shortCode} - Event not found: short_code=%s", shortCode)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("GET /events/{shortCode} - Invalid short code: %v", err)
			handlers.RespondBadRequest(w, msgMissingShortCode)

		default:
			h.logger.Error("GET /events/{shortCode} - Failed to get event: short_code=%s, error=%v", shortCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{shortCode} - Event retrieved successfully: short_code=%s", shortCode)
	handlers.RespondJSON(w, http.StatusOK, result)
}
