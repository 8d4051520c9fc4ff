package add_participant

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	"github.com/m04kA/SMC-MeetupService/internal/service/events"
	"github.com/m04kA/SMC-MeetupService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParticipant = "некорректные данные участника"
	msgEventNotFound      = "событие не найдено"
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

// Handle POST /api/v1/events/{shortCode}/participants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	var req models.AddParticipantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/{shortCode}/participants - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddParticipant(r.Context(), shortCode, &req)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("POST /events/{shortCode}/participants - Event not found: short_code=%s", shortCode)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("POST /events/{shortCode}/participants - Invalid participant data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParticipant)

		default:
			h.logger.Error("POST /events/{shortCode}/participants - Failed to add participant: short_code=%s, error=%v",
				shortCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/{shortCode}/participants - Participant added: short_code=%s, participant_id=%s",
		shortCode, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
