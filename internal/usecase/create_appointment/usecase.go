package create_appointment

import (
	"context"
	"errors"
	"fmt"

	engine "github.com/AlqamaShuja/educat-scheduling-service/internal/availability"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	availabilityRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/availability"
	configRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/scheduleconfig"
	crmClient "github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/ptr"
)

// UseCase use case для создания записи на консультацию
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	crmClient        CRMServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	crmClient CRMServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		crmClient:        crmClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, lead=%d, consultant=%d, office=%d, date=%s, time=%s",
		req.CreatedByUserID, req.LeadID, req.ConsultantID, req.OfficeID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем офис
	office, err := uc.crmClient.GetOffice(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, crmClient.ErrOfficeNotFound) {
			uc.logger.Warn("CreateAppointment: office id=%d not found", req.OfficeID)
			return nil, ErrOfficeNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get office id=%d: %v", req.OfficeID, err)
		return nil, fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
	}

	// 4. Получаем консультанта и проверяем, что он работает в офисе
	consultant, err := uc.crmClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, crmClient.ErrConsultantNotFound) {
			uc.logger.Warn("CreateAppointment: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	if err := validateConsultantAtOffice(consultant, req.OfficeID); err != nil {
		uc.logger.Warn("CreateAppointment: consultant id=%d not available at office id=%d: %v",
			req.ConsultantID, req.OfficeID, err)
		return nil, err
	}

	// 5. Получаем лида для денормализации данных
	lead, err := uc.crmClient.GetLead(ctx, req.LeadID)
	if err != nil {
		if errors.Is(err, crmClient.ErrLeadNotFound) {
			uc.logger.Warn("CreateAppointment: lead id=%d not found", req.LeadID)
			return nil, ErrLeadNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get lead id=%d: %v", req.LeadID, err)
		return nil, fmt.Errorf("%w: failed to get lead: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем конфигурацию расписания с учетом иерархии
		config, err := uc.configRepo.GetConfigWithHierarchy(txCtx, req.OfficeID, ptr.Ptr(req.ConsultantID))
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateAppointment: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// Если конфигурация не найдена, используем дефолтные значения
		if config == nil {
			config = &domain.ScheduleConfig{
				SlotIntervalMinutes:    domain.DefaultSlotIntervalMinutes,
				DefaultDurationMinutes: domain.DefaultDurationMinutesDefault,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
				MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			}
			uc.logger.Info("CreateAppointment: using default config for office=%d, consultant=%d",
				req.OfficeID, req.ConsultantID)
		} else {
			uc.logger.Info("CreateAppointment: using config id=%d", config.ID)
		}

		durationMinutes := req.DurationMinutes
		if durationMinutes == 0 {
			durationMinutes = config.DefaultDurationMinutes
		}

		// 6.2. Валидация даты с учетом конфигурации
		if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 6.3. Получаем рабочие часы на указанную дату
		daySchedule := getScheduleForDay(office, req.Date)
		workingHours, open := workingHoursFromSchedule(daySchedule)
		if !open {
			uc.logger.Warn("CreateAppointment: office is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrOfficeClosed
		}

		// 6.4. Валидация времени записи (minNoticeMinutes)
		if err := validateAppointmentTime(req.Date, req.StartTime, now, config.MinNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: appointment time validation failed: %v", err)
			return err
		}

		// 6.5. Проверяем, что время начала попадает в сетку слотов
		grid, err := engine.GenerateSlots(workingHours, config.SlotIntervalMinutes, durationMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate slot grid: %v", err)
			return fmt.Errorf("%w: failed to generate slot grid: %v", ErrInternal, err)
		}

		slot, ok := findSlot(grid, req)
		if !ok {
			uc.logger.Warn("CreateAppointment: start time %s is not on the slot grid", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 6.6. Окно доступности консультанта на эту дату
		var windows []domain.AvailabilityWindow
		window, err := uc.availabilityRepo.GetByConsultantAndDate(txCtx, req.ConsultantID, req.Date)
		if err != nil && !errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			uc.logger.Error("CreateAppointment: failed to get availability window: %v", err)
			return fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
		}
		if window != nil {
			windows = append(windows, *window)
		}

		// 6.7. Получаем все активные записи консультанта на эту дату с блокировкой
		filter := domain.ConsultantAppointmentsFilter{
			ConsultantID:    req.ConsultantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только записи, занимающие слот
		}

		appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		booked, skippedCount := bookedIntervalsFromAppointments(appointments)
		if skippedCount > 0 {
			uc.logger.Warn("CreateAppointment: skipped %d appointments with malformed start time", skippedCount)
		}

		breakWindow, ok := breakWindowFromSchedule(daySchedule)
		if !ok {
			uc.logger.Warn("CreateAppointment: malformed break window ignored: office=%d", req.OfficeID)
		}

		// 6.8. Проверяем доступность слота
		status := engine.Evaluate(slot, engine.EvaluationInput{
			Date:         req.Date,
			ConsultantID: req.ConsultantID,
			Break:        breakWindow,
			Windows:      windows,
			Booked:       booked,
			Now:          now,
		})

		if !status.IsSelectable() {
			uc.logger.Warn("CreateAppointment: slot %s is not available: status=%s", req.StartTime, status)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot %s is available: status=%s", req.StartTime, status)

		// 6.9. Создаем запись с денормализацией данных
		appointment := &domain.Appointment{
			LeadID:          req.LeadID,
			ConsultantID:    req.ConsultantID,
			OfficeID:        req.OfficeID,
			CreatedByUserID: req.CreatedByUserID,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusScheduled,
			// Денормализация данных лида и консультанта
			LeadName:       lead.Name,
			LeadPhone:      lead.Phone,
			ConsultantName: consultant.Name,
			// Заметки
			Notes: req.Notes,
		}

		// 6.10. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		LeadID:          result.LeadID,
		ConsultantID:    result.ConsultantID,
		OfficeID:        result.OfficeID,
		CreatedByUserID: result.CreatedByUserID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		LeadName:        result.LeadName,
		LeadPhone:       result.LeadPhone,
		ConsultantName:  result.ConsultantName,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// findSlot ищет в сетке слот с запрошенным временем начала
func findSlot(grid []domain.TimeSlot, req *Request) (domain.TimeSlot, bool) {
	for _, s := range grid {
		if s.StartTime == req.StartTime {
			return s, true
		}
	}
	return domain.TimeSlot{}, false
}
