package create_appointment

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CreatedByUserID int64            // ID сотрудника, создающего запись
	LeadID          int64            // ID лида
	ConsultantID    int64            // ID консультанта
	OfficeID        int64            // ID офиса
	Date            time.Time        // Дата встречи (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность встречи; 0 = значение из конфигурации
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	LeadID          int64            // ID лида
	ConsultantID    int64            // ID консультанта
	OfficeID        int64            // ID офиса
	CreatedByUserID int64            // ID создавшего сотрудника
	Date            time.Time        // Дата встречи
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус записи

	// Денормализованные данные
	LeadName       string  // Имя лида
	LeadPhone      *string // Телефон лида
	ConsultantName string  // Имя консультанта
	Notes          *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
