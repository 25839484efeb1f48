package list_event_types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	service EventTypesService
	logger  Logger
}

func NewHandler(service EventTypesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/event-types/{businessId}
// Публичный маршрут: отдаёт только активные типы событий.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("GET /event-types/{businessId} - Invalid business ID: %s", vars["businessId"])
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.ListPublic(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, eventtypes.ErrBusinessNotFound):
			h.logger.Warn("GET /event-types/%d - Business not found", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /event-types/%d - Failed: %v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /event-types/%d - %d event types", businessID, len(result.EventTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
