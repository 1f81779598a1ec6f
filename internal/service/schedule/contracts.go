package schedule

import (
	"context"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error)
	Update(ctx context.Context, config *domain.ScheduleConfig) error
	GetByOfficeAndConsultant(ctx context.Context, officeID int64, consultantID *int64) (*domain.ScheduleConfig, error)
	GetConfigWithHierarchy(ctx context.Context, officeID int64, consultantID *int64) (*domain.ScheduleConfig, error)
	GetAllByOffice(ctx context.Context, officeID int64) ([]*domain.ScheduleConfig, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	GetByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time) (*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, consultantID int64, date time.Time) error
}

// CRMServiceClient интерфейс клиента CRM
type CRMServiceClient interface {
	GetOffice(ctx context.Context, officeID int64) (*crmservice.Office, error)
	GetConsultant(ctx context.Context, consultantID int64) (*crmservice.Consultant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
