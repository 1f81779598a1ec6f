package get_consultant_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/middleware"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments"
)

const (
	msgInvalidConsultantID = "некорректный ID консультанта"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidParams       = "некорректные параметры запроса"
	msgConsultantNotFound  = "консультант не найден"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultants/{consultantId}/appointments
// Query params: officeId, status, date, startDate, endDate, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем consultantId из URL
	vars := mux.Vars(r)
	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/appointments - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /consultants/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	query := r.URL.Query()

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(
		consultantID,
		userID,
		query.Get("officeId"),
		query.Get("status"),
		query.Get("date"),
		query.Get("startDate"),
		query.Get("endDate"),
		query.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /consultants/{id}/appointments - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем записи консультанта
	result, err := h.service.GetConsultantAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrConsultantNotFound):
			h.logger.Warn("GET /consultants/{id}/appointments - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /consultants/{id}/appointments - Invalid input: consultant_id=%d, error=%v", consultantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /consultants/{id}/appointments - Failed to get appointments: consultant_id=%d, error=%v",
				consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultants/{id}/appointments - Appointments retrieved successfully: consultant_id=%d, count=%d",
		consultantID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
