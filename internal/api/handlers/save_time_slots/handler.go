package save_time_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	saveSelection "github.com/m04kA/SMC-MeetupService/internal/usecase/save_selection"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidSelection    = "некорректные данные выбора"
	msgEventNotFound       = "событие не найдено"
	msgParticipantNotFound = "участник не найден"
)

type Handler struct {
	useCase SaveSelectionUseCase
	logger  Logger
}

func NewHandler(useCase SaveSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{shortCode}/participants/{participantId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	shortCode := vars["shortCode"]
	participantID := vars["participantId"]

	var req SaveTimeSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{shortCode}/participants/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &saveSelection.Request{
		ShortCode:     shortCode,
		ParticipantID: participantID,
		SlotIDs:       req.Slots,
	})
	if err != nil {
		switch {
		case errors.Is(err, saveSelection.ErrEventNotFound):
			h.logger.Warn("PUT /events/{shortCode}/participants/{id}/slots - Event not found: short_code=%s", shortCode)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, saveSelection.ErrParticipantNotFound):
			h.logger.Warn("PUT /events/{shortCode}/participants/{id}/slots - Participant not found: short_code=%s, participant_id=%s",
				shortCode, participantID)
			handlers.RespondNotFound(w, msgParticipantNotFound)

		case errors.Is(err, saveSelection.ErrInvalidInput):
			h.logger.Warn("PUT /events/{shortCode}/participants/{id}/slots - Invalid selection: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		default:
			h.logger.Error("PUT /events/{shortCode}/participants/{id}/slots - Failed to save selection: short_code=%s, participant_id=%s, error=%v",
				shortCode, participantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{shortCode}/participants/{id}/slots - Selection saved: short_code=%s, participant_id=%s, saved=%d",
		shortCode, participantID, result.Saved)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
