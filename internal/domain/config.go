package domain

import "time"

// ScheduleConfig represents slot-generation settings for an office.
// Supports hierarchical configuration:
// 1. Consultant at office (office_id, consultant_id)
// 2. Office-wide (office_id, NULL)
type ScheduleConfig struct {
	ID                     int64
	OfficeID               int64
	ConsultantID           *int64 // NULL = config for all consultants of the office
	SlotIntervalMinutes    int    // Шаг сетки слотов
	DefaultDurationMinutes int    // Длительность встречи по умолчанию
	AdvanceBookingDays     int    // 0 = unlimited
	MinNoticeMinutes       int    // Минимальное время до начала встречи при создании записи
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// IsOfficeWide returns true if this configuration applies to every consultant of the office
func (c *ScheduleConfig) IsOfficeWide() bool {
	return c.ConsultantID == nil
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance appointments can be made
func (c *ScheduleConfig) HasAdvanceBookingLimit() bool {
	return c.AdvanceBookingDays > 0
}
