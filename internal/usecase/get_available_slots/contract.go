package get_available_slots

import (
	"context"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetByConsultantWithFilter получает записи консультанта с фильтрацией по дате/офису
	GetByConsultantWithFilter(ctx context.Context, filter domain.ConsultantAppointmentsFilter) ([]*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	GetByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time) (*domain.AvailabilityWindow, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
	GetConfigWithHierarchy(ctx context.Context, officeID int64, consultantID *int64) (*domain.ScheduleConfig, error)
}

// CRMServiceClient интерфейс клиента CRM
type CRMServiceClient interface {
	GetOffice(ctx context.Context, officeID int64) (*crmservice.Office, error)
	GetConsultant(ctx context.Context, consultantID int64) (*crmservice.Consultant, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
