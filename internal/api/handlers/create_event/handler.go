package create_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetupService/internal/service/events"
	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEventData   = "некорректные данные события"
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

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid event data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventData)

		default:
			h.logger.Error("POST /events - Failed to create event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created successfully: short_code=%s", result.Event.ShortCode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
