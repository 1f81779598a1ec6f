package update_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/middleware"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule"
)

const (
	msgInvalidOfficeID       = "некорректный ID офиса"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgOfficeNotFound        = "офис не найден"
	msgConsultantNotFound    = "консультант не найден"
	msgConsultantNotAtOffice = "консультант не работает в этом офисе"
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

// Handle PUT /api/v1/offices/{officeId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем officeId из URL
	vars := mux.Vars(r)
	officeID, err := strconv.ParseInt(vars["officeId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /offices/{id}/schedule-config - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /offices/{id}/schedule-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /offices/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Создаем или обновляем конфигурацию
	result, err := h.service.UpsertConfig(r.Context(), req.ToServiceRequest(officeID, userID))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrOfficeNotFound):
			h.logger.Warn("PUT /offices/{id}/schedule-config - Office not found: office_id=%d", officeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, schedule.ErrConsultantNotFound):
			h.logger.Warn("PUT /offices/{id}/schedule-config - Consultant not found: office_id=%d", officeID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, schedule.ErrConsultantNotAtOffice):
			h.logger.Warn("PUT /offices/{id}/schedule-config - Consultant not at office: office_id=%d", officeID)
			handlers.RespondBadRequest(w, msgConsultantNotAtOffice)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /offices/{id}/schedule-config - Invalid input: office_id=%d, error=%v", officeID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /offices/{id}/schedule-config - Failed to upsert config: office_id=%d, error=%v", officeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /offices/{id}/schedule-config - Config saved successfully: office_id=%d, config_id=%d",
		officeID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
