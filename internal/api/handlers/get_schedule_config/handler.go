package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule/models"
)

const (
	msgInvalidOfficeID     = "некорректный ID офиса"
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgConfigNotFound      = "конфигурация не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/offices/{officeId}/schedule-config
// Query params: consultantId (опционально, для персональной конфигурации)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем officeId из URL
	vars := mux.Vars(r)
	officeID, err := strconv.ParseInt(vars["officeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offices/{id}/schedule-config - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	req := &models.GetConfigRequest{OfficeID: officeID}

	// Парсим consultantId если указан
	if consultantIDStr := r.URL.Query().Get("consultantId"); consultantIDStr != "" {
		consultantID, err := strconv.ParseInt(consultantIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /offices/{id}/schedule-config - Invalid consultant ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConsultantID)
			return
		}
		req.ConsultantID = &consultantID
	}

	// Получаем конфигурацию с учетом иерархии
	result, err := h.service.GetConfig(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfigNotFound):
			h.logger.Warn("GET /offices/{id}/schedule-config - Config not found: office_id=%d", officeID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		default:
			h.logger.Error("GET /offices/{id}/schedule-config - Failed to get config: office_id=%d, error=%v", officeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offices/{id}/schedule-config - Config retrieved successfully: office_id=%d, config_id=%d",
		officeID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
