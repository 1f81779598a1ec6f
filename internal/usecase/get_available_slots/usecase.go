package get_available_slots

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

// UseCase use case для получения слотов консультанта со статусами
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	configRepo       ConfigRepository
	crmClient        CRMServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	configRepo ConfigRepository,
	crmClient CRMServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		configRepo:       configRepo,
		crmClient:        crmClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%d, office=%d, consultant=%d, date=%s",
		req.UserID, req.OfficeID, req.ConsultantID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем офис
	office, err := uc.crmClient.GetOffice(ctx, req.OfficeID)
	if err != nil {
		if errors.Is(err, crmClient.ErrOfficeNotFound) {
			uc.logger.Warn("GetAvailableSlots: office id=%d not found", req.OfficeID)
			return nil, ErrOfficeNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get office id=%d: %v", req.OfficeID, err)
		return nil, fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
	}

	// 4. Получаем консультанта и проверяем, что он работает в офисе
	consultant, err := uc.crmClient.GetConsultant(ctx, req.ConsultantID)
	if err != nil {
		if errors.Is(err, crmClient.ErrConsultantNotFound) {
			uc.logger.Warn("GetAvailableSlots: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	if err := validateConsultantAtOffice(consultant, req.OfficeID); err != nil {
		uc.logger.Warn("GetAvailableSlots: consultant id=%d not available at office id=%d: %v",
			req.ConsultantID, req.OfficeID, err)
		return nil, err
	}

	// 5. Получаем конфигурацию расписания с учетом иерархии
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, req.OfficeID, ptr.Ptr(req.ConsultantID))
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// Если конфигурация не найдена, используем дефолтные значения
	if config == nil {
		config = &domain.ScheduleConfig{
			SlotIntervalMinutes:    domain.DefaultSlotIntervalMinutes,
			DefaultDurationMinutes: domain.DefaultDurationMinutesDefault,
			AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
			MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
		}
		uc.logger.Info("GetAvailableSlots: using default config for office=%d, consultant=%d",
			req.OfficeID, req.ConsultantID)
	} else {
		uc.logger.Info("GetAvailableSlots: using config id=%d", config.ID)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = config.DefaultDurationMinutes
	}

	// 6. Валидация даты с учетом конфигурации
	if err := validateDate(req.Date, now, config.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 7. Рабочие часы офиса на указанную дату
	daySchedule := getScheduleForDay(office, req.Date)
	workingHours, open := workingHoursFromSchedule(daySchedule)
	if !open {
		uc.logger.Info("GetAvailableSlots: office is closed on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, durationMinutes), nil
	}

	// 8. Генерируем сетку слотов
	slots, err := engine.GenerateSlots(workingHours, config.SlotIntervalMinutes, durationMinutes)
	if err != nil {
		// Некорректные рабочие часы из CRM не должны ронять запрос:
		// деградируем до пустой выдачи и флагуем аномалию
		uc.logger.Error("GetAvailableSlots: slot generation degraded to empty set: office=%d, date=%s: %v",
			req.OfficeID, req.Date.Format(domain.DateFormat), err)
		return uc.emptyResponse(req, durationMinutes), nil
	}

	// 9. Окно доступности консультанта на эту дату
	var windows []domain.AvailabilityWindow
	window, err := uc.availabilityRepo.GetByConsultantAndDate(ctx, req.ConsultantID, req.Date)
	if err != nil && !errors.Is(err, availabilityRepo.ErrWindowNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get availability window: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability window: %v", ErrInternal, err)
	}
	if window != nil {
		windows = append(windows, *window)
	}

	// 10. Активные записи консультанта на эту дату
	filter := domain.ConsultantAppointmentsFilter{
		ConsultantID:    req.ConsultantID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только записи, занимающие слот
	}

	appointments, err := uc.appointmentRepo.GetByConsultantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	booked, skipped := bookedIntervalsFromAppointments(appointments)
	if skipped > 0 {
		uc.logger.Warn("GetAvailableSlots: skipped %d appointments with malformed start time: consultant=%d, date=%s",
			skipped, req.ConsultantID, req.Date.Format(domain.DateFormat))
	}

	// 11. Получаем перерыв офиса; некорректные границы трактуем как отсутствие
	breakWindow, ok := breakWindowFromSchedule(daySchedule)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: malformed break window ignored: office=%d", req.OfficeID)
	}

	// 12. Оцениваем каждый слот и группируем для выдачи
	evaluated := engine.EvaluateAll(slots, engine.EvaluationInput{
		Date:         req.Date,
		ConsultantID: req.ConsultantID,
		Break:        breakWindow,
		Windows:      windows,
		Booked:       booked,
		Now:          now,
	})

	grouping := engine.Group(evaluated, req.GroupByHour, req.ShowUnavailable)
	respSlots, respGroups, total, available := fromGrouping(grouping)

	uc.logger.Info("GetAvailableSlots: %d/%d slots available for office=%d, consultant=%d, date=%s",
		available, total, req.OfficeID, req.ConsultantID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		OfficeID:        req.OfficeID,
		ConsultantID:    req.ConsultantID,
		DurationMinutes: durationMinutes,
		Slots:           respSlots,
		Groups:          respGroups,
		TotalSlots:      total,
		AvailableSlots:  available,
	}, nil
}

// emptyResponse ответ без слотов (закрытый день или деградация)
func (uc *UseCase) emptyResponse(req *Request, durationMinutes int) *Response {
	return &Response{
		Date:            req.Date,
		OfficeID:        req.OfficeID,
		ConsultantID:    req.ConsultantID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}
}
