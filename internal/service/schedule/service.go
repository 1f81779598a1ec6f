package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	availabilityRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/availability"
	configRepo "github.com/AlqamaShuja/educat-scheduling-service/internal/infra/storage/scheduleconfig"
	crmClient "github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule/models"
)

// Service сервис для управления расписанием: конфигурация слотов и окна доступности
type Service struct {
	configRepo       ConfigRepository
	availabilityRepo AvailabilityRepository
	crmClient        CRMServiceClient
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	configRepo ConfigRepository,
	availabilityRepo AvailabilityRepository,
	crmClient CRMServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		configRepo:       configRepo,
		availabilityRepo: availabilityRepo,
		crmClient:        crmClient,
		txManager:        txManager,
		logger:           logger,
	}
}

// GetConfig получает конфигурацию с учетом иерархии приоритетов
// Приоритет: консультант > офис
func (s *Service) GetConfig(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for office=%d, consultant=%v", req.OfficeID, req.ConsultantID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, req.OfficeID, req.ConsultantID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("GetConfig: no config found for office=%d, consultant=%v", req.OfficeID, req.ConsultantID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("GetConfig: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetConfig: successfully fetched config id=%d", config.ID)
	return models.FromDomainConfig(config), nil
}

// GetAllByOffice получает все конфигурации офиса
func (s *Service) GetAllByOffice(ctx context.Context, officeID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByOffice: fetching configs for office=%d", officeID)

	if err := s.checkOfficeExists(ctx, officeID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByOffice(ctx, officeID)
	if err != nil {
		s.logger.Error("GetAllByOffice: repository error for office=%d: %v", officeID, err)
		return nil, fmt.Errorf("%w: GetAllByOffice - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByOffice: successfully fetched %d configs for office=%d", len(configs), officeID)
	return models.FromDomainConfigList(configs), nil
}

// UpsertConfig создает или обновляет конфигурацию для пары (офис, консультант)
// При создании отсутствующие поля получают значения по умолчанию
func (s *Service) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpsertConfig: office=%d, consultant=%v by user=%d", req.OfficeID, req.ConsultantID, req.UserID)

	// 1. Проверяем существование офиса и консультанта в CRM
	if err := s.checkOfficeExists(ctx, req.OfficeID); err != nil {
		return nil, err
	}
	if req.ConsultantID != nil {
		if err := s.checkConsultantAtOffice(ctx, *req.ConsultantID, req.OfficeID); err != nil {
			return nil, err
		}
	}

	var result *domain.ScheduleConfig

	// 2. Читаем и пишем конфигурацию в одной транзакции
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		config, err := s.configRepo.GetByOfficeAndConsultant(txCtx, req.OfficeID, req.ConsultantID)
		if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("UpsertConfig: repository error: %v", err)
			return fmt.Errorf("%w: UpsertConfig - repository error: %v", ErrInternal, err)
		}

		created := false
		if config == nil {
			config = &domain.ScheduleConfig{
				OfficeID:               req.OfficeID,
				ConsultantID:           req.ConsultantID,
				SlotIntervalMinutes:    domain.DefaultSlotIntervalMinutes,
				DefaultDurationMinutes: domain.DefaultDurationMinutesDefault,
				AdvanceBookingDays:     domain.DefaultAdvanceBookingDays,
				MinNoticeMinutes:       domain.DefaultMinNoticeMinutes,
			}
			created = true
		}

		req.ApplyToConfig(config)

		if err := s.validateConfigData(config); err != nil {
			s.logger.Warn("UpsertConfig: validation failed: %v", err)
			return err
		}

		if created {
			result, err = s.configRepo.Create(txCtx, config)
			if err != nil {
				s.logger.Error("UpsertConfig: failed to create config: %v", err)
				return fmt.Errorf("%w: UpsertConfig - create error: %v", ErrInternal, err)
			}
			return nil
		}

		if err := s.configRepo.Update(txCtx, config); err != nil {
			s.logger.Error("UpsertConfig: failed to update config id=%d: %v", config.ID, err)
			return fmt.Errorf("%w: UpsertConfig - update error: %v", ErrInternal, err)
		}
		result = config
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpsertConfig: successfully saved config id=%d", result.ID)
	return models.FromDomainConfig(result), nil
}

// GetAvailability получает окно доступности консультанта на дату
func (s *Service) GetAvailability(ctx context.Context, consultantID int64, date string) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: consultant=%d, date=%s", consultantID, date)

	parsed, err := parseDate(date)
	if err != nil {
		s.logger.Warn("GetAvailability: invalid date=%s", date)
		return nil, fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	window, err := s.availabilityRepo.GetByConsultantAndDate(ctx, consultantID, parsed)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("GetAvailability: no window for consultant=%d, date=%s", consultantID, date)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("GetAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWindow(window), nil
}

// SetAvailability создает или обновляет окно доступности консультанта на дату
func (s *Service) SetAvailability(ctx context.Context, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("SetAvailability: consultant=%d, date=%s, available=%t, intervals=%d by user=%d",
		req.ConsultantID, req.Date, req.IsAvailable, len(req.AllowedIntervals), req.UserID)

	// 1. Конвертируем и валидируем запрос
	window, err := req.ToDomainWindow()
	if err != nil {
		s.logger.Warn("SetAvailability: invalid request: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем существование консультанта в CRM
	if _, err := s.crmClient.GetConsultant(ctx, req.ConsultantID); err != nil {
		if errors.Is(err, crmClient.ErrConsultantNotFound) {
			s.logger.Warn("SetAvailability: consultant id=%d not found", req.ConsultantID)
			return nil, ErrConsultantNotFound
		}
		s.logger.Error("SetAvailability: failed to get consultant id=%d: %v", req.ConsultantID, err)
		return nil, fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	// 3. Сохраняем окно
	saved, err := s.availabilityRepo.Upsert(ctx, window)
	if err != nil {
		s.logger.Error("SetAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetAvailability: successfully saved window id=%d", saved.ID)
	return models.FromDomainWindow(saved), nil
}

// ClearAvailability удаляет окно доступности, возвращая консультанту стандартное расписание
func (s *Service) ClearAvailability(ctx context.Context, consultantID int64, date string) error {
	s.logger.Info("ClearAvailability: consultant=%d, date=%s", consultantID, date)

	parsed, err := parseDate(date)
	if err != nil {
		s.logger.Warn("ClearAvailability: invalid date=%s", date)
		return fmt.Errorf("%w: invalid date", ErrInvalidInput)
	}

	if err := s.availabilityRepo.Delete(ctx, consultantID, parsed); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("ClearAvailability: no window for consultant=%d, date=%s", consultantID, date)
			return ErrWindowNotFound
		}
		s.logger.Error("ClearAvailability: repository error: %v", err)
		return fmt.Errorf("%w: ClearAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ClearAvailability: successfully cleared window for consultant=%d, date=%s", consultantID, date)
	return nil
}

// Вспомогательные методы

// parseDate разбирает дату в формате YYYY-MM-DD
func parseDate(date string) (time.Time, error) {
	return time.Parse(domain.DateFormat, date)
}

// validateConfigData проверяет, что параметры конфигурации в допустимых пределах
func (s *Service) validateConfigData(config *domain.ScheduleConfig) error {
	if config.SlotIntervalMinutes < domain.MinSlotIntervalMinutes ||
		config.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if config.DefaultDurationMinutes < domain.MinMeetingDurationMinutes ||
		config.DefaultDurationMinutes > domain.MaxMeetingDurationMinutes {
		return fmt.Errorf("%w: defaultDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinMeetingDurationMinutes, domain.MaxMeetingDurationMinutes)
	}

	if config.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		config.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if config.MinNoticeMinutes < domain.MinNoticeMinutesLimit ||
		config.MinNoticeMinutes > domain.MaxNoticeMinutesLimit {
		return fmt.Errorf("%w: minNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutesLimit, domain.MaxNoticeMinutesLimit)
	}

	return nil
}

// checkOfficeExists проверяет, что офис существует в CRM
func (s *Service) checkOfficeExists(ctx context.Context, officeID int64) error {
	if _, err := s.crmClient.GetOffice(ctx, officeID); err != nil {
		if errors.Is(err, crmClient.ErrOfficeNotFound) {
			s.logger.Warn("checkOfficeExists: office id=%d not found", officeID)
			return ErrOfficeNotFound
		}
		s.logger.Error("checkOfficeExists: failed to get office id=%d: %v", officeID, err)
		return fmt.Errorf("%w: failed to get office: %v", ErrInternal, err)
	}
	return nil
}

// checkConsultantAtOffice проверяет, что консультант существует и работает в офисе
func (s *Service) checkConsultantAtOffice(ctx context.Context, consultantID, officeID int64) error {
	consultant, err := s.crmClient.GetConsultant(ctx, consultantID)
	if err != nil {
		if errors.Is(err, crmClient.ErrConsultantNotFound) {
			s.logger.Warn("checkConsultantAtOffice: consultant id=%d not found", consultantID)
			return ErrConsultantNotFound
		}
		s.logger.Error("checkConsultantAtOffice: failed to get consultant id=%d: %v", consultantID, err)
		return fmt.Errorf("%w: failed to get consultant: %v", ErrInternal, err)
	}

	for _, id := range consultant.OfficeIDs {
		if id == officeID {
			return nil
		}
	}

	s.logger.Warn("checkConsultantAtOffice: consultant id=%d does not work at office id=%d", consultantID, officeID)
	return ErrConsultantNotAtOffice
}
