package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	appointmentRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/appointment"
	crmClient "github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments/models"
)

// Service сервис для работы с записями на консультации
type Service struct {
	appointmentRepo AppointmentRepository
	crmClient       CRMServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	crmClient CRMServiceClient,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		crmClient:       crmClient,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - запись видят её создатель и консультант
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(appointment, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetConsultantAppointments получает записи консультанта с гибкой фильтрацией
// Поддерживает фильтрацию по офису, периоду, статусу и включению неактивных записей
//
// Примеры использования:
// - Все активные записи: GetConsultantAppointments(ctx, &GetConsultantAppointmentsRequest{ConsultantID: 7, UserID: 42})
// - Записи в конкретном офисе: указать OfficeID
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Записи за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetConsultantAppointments(ctx context.Context, req *models.GetConsultantAppointmentsRequest) (*models.AppointmentListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetConsultantAppointments: fetching appointments for consultant=%d, user=%d", req.ConsultantID, req.UserID)
	if req.OfficeID != nil {
		logMsg += fmt.Sprintf(", office=%d", *req.OfficeID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем, что консультант существует
	if _, err := s.crmClient.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, crmClient.ErrConsultantNotFound) {
			s.logger.Warn("GetConsultantAppointments: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		s.logger.Error("GetConsultantAppointments: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetConsultantAppointments: invalid filter for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем записи с фильтрацией
	appointments, err := s.appointmentRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetConsultantAppointments: repository error for consultant=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: GetConsultantAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConsultantAppointments: successfully fetched %d appointments for consultant=%d",
		len(appointments), req.ConsultantID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись
// Инициатор отмены определяет итоговый статус:
// "lead" -> cancelled_by_lead, "office" -> cancelled_by_office
func (s *Service) Cancel(ctx context.Context, appointmentID int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d (%s)", appointmentID, req.UserID, req.CancelledBy)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for appointment id=%d", appointmentID)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить запись
	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", appointmentID, appointment.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены по инициатору
	cancelStatus, err := models.ToCancellationStatus(req.CancelledBy)
	if err != nil {
		s.logger.Warn("Cancel: invalid cancelledBy=%s for appointment id=%d", req.CancelledBy, appointmentID)
		return fmt.Errorf("%w: cancelledBy must be \"lead\" or \"office\"", ErrInvalidInput)
	}

	// Отменяем запись
	if err := s.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", appointmentID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус записи (подтверждение, завершение, неявка)
func (s *Service) UpdateStatus(ctx context.Context, appointmentID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%d",
		appointmentID, req.Status, req.UserID)

	// Получаем запись
	if _, err := s.appointmentRepo.GetByID(ctx, appointmentID); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, appointmentID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Отмена делается через Cancel, чтобы зафиксировать причину и время
	if newStatus == domain.StatusCancelledByLead || newStatus == domain.StatusCancelledByOffice {
		s.logger.Warn("UpdateStatus: cancellation status=%s must go through Cancel", newStatus)
		return fmt.Errorf("%w: use cancel endpoint for cancellation", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.appointmentRepo.UpdateStatus(ctx, appointmentID, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found during update", appointmentID)
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", appointmentID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", appointmentID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Доступ есть у создателя записи и у самого консультанта
func (s *Service) checkUserAccess(appointment *domain.Appointment, userID int64) error {
	if appointment.CreatedByUserID == userID {
		return nil
	}
	if appointment.ConsultantID == userID {
		return nil
	}
	return ErrAccessDenied
}
