package get_calendar_grid

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetupService/internal/api/handlers"
	composeGrid "github.com/m04kA/SMC-MeetupService/internal/usecase/compose_grid"
)

const (
	msgEventNotFound    = "событие не найдено"
	msgInvalidGridQuery = "некорректные параметры сетки"
)

type Handler struct {
	useCase ComposeGridUseCase
	logger  Logger
}

func NewHandler(useCase ComposeGridUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{shortCode}/grid
// Query params: page (optional), layout (optional, wide|narrow),
// editMode (optional, bool), participantId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	useCaseReq, err := ToUseCaseRequest(shortCode, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /events/{shortCode}/grid - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGridQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, composeGrid.ErrEventNotFound):
			h.logger.Warn("GET /events/{shortCode}/grid - Event not found: short_code=%s", shortCode)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, composeGrid.ErrInvalidInput):
			h.logger.Warn("GET /events/{shortCode}/grid - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidGridQuery)

		default:
			h.logger.Error("GET /events/{shortCode}/grid - Failed to compose grid: short_code=%s, error=%v",
				shortCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{shortCode}/grid - Grid composed: short_code=%s, page=%d/%d",
		shortCode, result.Page+1, result.TotalPages)
	handlers.RespondJSON(w, http.StatusOK, result)
}
