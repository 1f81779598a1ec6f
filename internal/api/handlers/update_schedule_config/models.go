package update_schedule_config

import (
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule/models"
)

// UpdateScheduleConfigRequest HTTP request model
// Все числовые поля опциональны - отсутствующие поля не изменяются
type UpdateScheduleConfigRequest struct {
	ConsultantID           *int64 `json:"consultantId,omitempty"` // NULL = конфигурация всего офиса
	SlotIntervalMinutes    *int   `json:"slotIntervalMinutes,omitempty"`
	DefaultDurationMinutes *int   `json:"defaultDurationMinutes,omitempty"`
	AdvanceBookingDays     *int   `json:"advanceBookingDays,omitempty"`
	MinNoticeMinutes       *int   `json:"minNoticeMinutes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleConfigRequest) ToServiceRequest(officeID, userID int64) *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		UserID:                 userID,
		OfficeID:               officeID,
		ConsultantID:           r.ConsultantID,
		SlotIntervalMinutes:    r.SlotIntervalMinutes,
		DefaultDurationMinutes: r.DefaultDurationMinutes,
		AdvanceBookingDays:     r.AdvanceBookingDays,
		MinNoticeMinutes:       r.MinNoticeMinutes,
	}
}
