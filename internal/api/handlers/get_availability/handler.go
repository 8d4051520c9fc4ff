package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	aggregateAvailability "github.com/m04kA/SMC-MeetupService/internal/usecase/aggregate_availability"
)

const (
	msgEventNotFound = "событие не найдено"
	msgInvalidInput  = "некорректные параметры запроса"
)

type Handler struct {
	useCase AggregateAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AggregateAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{shortCode}/availability
// Query params: participantId (optional, для выдачи его собственного выбора)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	var participantID *string
	if id := r.URL.Query().Get("participantId"); id != "" {
		participantID = &id
	}

	result, err := h.useCase.Execute(r.Context(), &aggregateAvailability.Request{
		ShortCode:     shortCode,
		ParticipantID: participantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, aggregateAvailability.ErrEventNotFound):
			h.logger.Warn("GET /events/{shortCode}/availability - Event not found: short_code=%s", shortCode)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, aggregateAvailability.ErrInvalidInput):
			h.logger.Warn("GET /events/{shortCode}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /events/{shortCode}/availability - Failed to aggregate: short_code=%s, error=%v",
				shortCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{shortCode}/availability - Availability retrieved: short_code=%s, slots=%d",
		shortCode, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
