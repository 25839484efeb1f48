package create_event_type

import (
	"errors"
	"net/http"

	"github.com/tenzan/jikan-pro-ws/internal/api/handlers"
	"github.com/tenzan/jikan-pro-ws/internal/api/middleware"
	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes"
	"github.com/tenzan/jikan-pro-ws/internal/service/eventtypes/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlugTaken          = "slug уже используется в этом бизнесе"
	msgStaffNotFound      = "сотрудник не найден"
	msgInvalidInput       = "некорректные данные типа события"
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

// Handle POST /api/v1/event-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, ok := middleware.BusinessID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	var req models.CreateEventTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /event-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.BusinessID = businessID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, eventtypes.ErrSlugTaken):
			h.logger.Warn("POST /event-types - Slug taken: slug=%s, business=%d", req.Slug, businessID)
			handlers.RespondError(w, http.StatusConflict, msgSlugTaken)

		case errors.Is(err, eventtypes.ErrStaffNotFound):
			h.logger.Warn("POST /event-types - Staff not found: business=%d", businessID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, eventtypes.ErrInvalidInput):
			h.logger.Warn("POST /event-types - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /event-types - Failed: business=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /event-types - Created id=%d, slug=%s, business=%d", result.ID, result.Slug, businessID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
