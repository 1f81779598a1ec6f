package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes    = 30
	DefaultDurationMinutesDefault = 60
	DefaultAdvanceBookingDays     = 0 // 0 = unlimited
	DefaultMinNoticeMinutes       = 0
)

// Business validation constants
const (
	MinSlotIntervalMinutes      = 5
	MaxSlotIntervalMinutes      = 240
	MinMeetingDurationMinutes   = 5
	MaxMeetingDurationMinutes   = 480 // 8 hours
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365 // 1 year
	MinNoticeMinutesLimit       = 0
	MaxNoticeMinutesLimit       = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// NearMissWindowMinutes слот помечается как limited, если другая запись
// начинается в пределах этого окна после начала слота
const NearMissWindowMinutes = 30

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов записей, не занимающих слот
// Используется для фильтрации при вычислении доступности
var InactiveStatuses = []AppointmentStatus{
	StatusCancelledByLead,
	StatusCancelledByOffice,
	StatusNoShow,
}

// ActiveStatuses список статусов активных записей
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
}
