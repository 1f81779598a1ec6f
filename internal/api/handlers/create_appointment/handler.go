package create_appointment

import (
	"errors"
	"net/http"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/handlers"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/api/middleware"
	createAppointment "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgSlotNotAvailable       = "выбранный временной слот недоступен"
	msgOfficeNotFound         = "офис не найден"
	msgConsultantNotFound     = "консультант не найден"
	msgLeadNotFound           = "лид не найден"
	msgConsultantNotAtOffice  = "консультант не работает в этом офисе"
	msgConsultantInactive     = "консультант деактивирован"
	msgOfficeClosed           = "офис закрыт в выбранную дату"
	msgInvalidAppointmentDate = "некорректная дата встречи"
	msgDateTooFar             = "дата встречи слишком далеко в будущем"
	msgInvalidTimeSlot        = "некорректный временной слот"
	msgTooLateToBook          = "слишком поздно для записи на этот слот"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, consultant_id=%d", userID, req.ConsultantID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrOfficeNotFound):
			h.logger.Warn("POST /appointments - Office not found: office_id=%d", req.OfficeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case errors.Is(err, createAppointment.ErrConsultantNotFound):
			h.logger.Warn("POST /appointments - Consultant not found: consultant_id=%d", req.ConsultantID)
			handlers.RespondNotFound(w, msgConsultantNotFound)

		case errors.Is(err, createAppointment.ErrLeadNotFound):
			h.logger.Warn("POST /appointments - Lead not found: lead_id=%d", req.LeadID)
			handlers.RespondNotFound(w, msgLeadNotFound)

		case errors.Is(err, createAppointment.ErrConsultantNotAtOffice):
			h.logger.Warn("POST /appointments - Consultant not at office: office_id=%d, consultant_id=%d",
				req.OfficeID, req.ConsultantID)
			handlers.RespondBadRequest(w, msgConsultantNotAtOffice)

		case errors.Is(err, createAppointment.ErrConsultantInactive):
			h.logger.Warn("POST /appointments - Consultant inactive: consultant_id=%d", req.ConsultantID)
			handlers.RespondBadRequest(w, msgConsultantInactive)

		case errors.Is(err, createAppointment.ErrOfficeClosed):
			h.logger.Warn("POST /appointments - Office closed: office_id=%d, date=%s", req.OfficeID, req.Date)
			handlers.RespondBadRequest(w, msgOfficeClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: user_id=%d, time=%s", userID, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, consultant_id=%d, error=%v",
				userID, req.ConsultantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, consultant_id=%d",
		result.ID, userID, req.ConsultantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
