package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers"
	getAvailableSlots "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidOfficeID      = "некорректный ID офиса"
	msgInvalidConsultantID  = "некорректный ID консультанта"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration      = "некорректная длительность встречи"
	msgOfficeNotFound       = "офис не найден"
	msgConsultantNotFound   = "консультант не найден"
	msgConsultantNotAtOffice = "консультант не работает в этом офисе"
	msgConsultantInactive   = "консультант деактивирован"
	msgInvalidRequestDate   = "некорректная дата запроса"
	msgDateTooFar           = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offices/{officeId}/consultants/{consultantId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes, groupByHour, showUnavailable
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем officeId из URL
	officeID, err := strconv.ParseInt(vars["officeId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	// Извлекаем consultantId из URL
	consultantID, err := strconv.ParseInt(vars["consultantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid consultant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultantID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Опциональная длительность встречи; 0 = значение из конфигурации
	durationMinutes := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	groupByHour := r.URL.Query().Get("groupByHour") == "true"
	showUnavailable := r.URL.Query().Get("showUnavailable") == "true"

	// ID сотрудника опционален для этого публичного маршрута
	var userID int64
	if userIDStr := r.Header.Get("X-User-ID"); userIDStr != "" {
		userID, _ = strconv.ParseInt(userIDStr, 10, 64)
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(userID, officeID, consultantID, dateStr, durationMinutes, groupByHour, showUnavailable)
	if err != nil {
		h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrOfficeNotFound):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Office not found: office_id=%d", officeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, getAvailableSlots.ErrConsultantNotFound):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Consultant not found: consultant_id=%d", consultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, getAvailableSlots.ErrConsultantNotAtOffice):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Consultant not at office: office_id=%d, consultant_id=%d",
				officeID, consultantID)
			handlers.RespondBadRequest(w, msgConsultantNotAtOffice)

		case errors.Is(err, getAvailableSlots.ErrConsultantInactive):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Consultant inactive: consultant_id=%d", consultantID)
			handlers.RespondBadRequest(w, msgConsultantInactive)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid request date: office_id=%d", officeID)
			handlers.RespondBadRequest(w, msgInvalidRequestDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Date too far in future: office_id=%d", officeID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /offices/{id}/consultants/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("GET /offices/{id}/consultants/{id}/available-slots - Failed to get slots: office_id=%d, consultant_id=%d, error=%v",
				officeID, consultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /offices/{id}/consultants/{id}/available-slots - Slots retrieved successfully: office_id=%d, consultant_id=%d, available=%d/%d",
		officeID, consultantID, result.AvailableSlots, result.TotalSlots)
	handlers.RespondJSON(w, http.StatusOK, response)
}
