package create_appointment

import (
	"fmt"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CreatedByUserID <= 0 {
		return fmt.Errorf("%w: createdByUserID must be positive", ErrInvalidInput)
	}

	if req.LeadID <= 0 {
		return fmt.Errorf("%w: leadID must be positive", ErrInvalidInput)
	}

	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	if req.OfficeID <= 0 {
		return fmt.Errorf("%w: officeID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	// 0 означает "взять из конфигурации", отрицательные значения недопустимы
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes > domain.MaxMeetingDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, domain.MaxMeetingDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(appointmentDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(appointmentDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	appointmentDateOnly := time.Date(appointmentDate.Year(), appointmentDate.Month(), appointmentDate.Day(), 0, 0, 0, 0, appointmentDate.Location())

	if appointmentDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateAppointmentTime проверяет, что запись не нарушает minNoticeMinutes
func validateAppointmentTime(
	appointmentDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minNoticeMinutes int,
) error {
	// Если дата встречи не сегодня, проверка не нужна
	if !isSameDay(appointmentDate, now) {
		return nil
	}

	// Вычисляем минимальное допустимое время
	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	// Проверяем, что время начала не раньше минимального
	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// validateConsultantAtOffice проверяет, что консультант работает в указанном офисе
func validateConsultantAtOffice(consultant *crmservice.Consultant, officeID int64) error {
	if !consultant.IsActive {
		return ErrConsultantInactive
	}

	for _, id := range consultant.OfficeIDs {
		if id == officeID {
			return nil
		}
	}
	return ErrConsultantNotAtOffice
}

// getScheduleForDay возвращает расписание офиса на указанный день недели
func getScheduleForDay(office *crmservice.Office, date time.Time) crmservice.DaySchedule {
	weekday := date.Weekday()

	switch weekday {
	case time.Monday:
		return office.WorkingHours.Monday
	case time.Tuesday:
		return office.WorkingHours.Tuesday
	case time.Wednesday:
		return office.WorkingHours.Wednesday
	case time.Thursday:
		return office.WorkingHours.Thursday
	case time.Friday:
		return office.WorkingHours.Friday
	case time.Saturday:
		return office.WorkingHours.Saturday
	case time.Sunday:
		return office.WorkingHours.Sunday
	default:
		return crmservice.DaySchedule{IsOpen: false}
	}
}

// workingHoursFromSchedule извлекает рабочие часы из расписания дня
// Второе значение false, если офис закрыт или часы не заданы
func workingHoursFromSchedule(day crmservice.DaySchedule) (domain.WorkingHours, bool) {
	if !day.IsOpen || day.OpenTime == nil || day.CloseTime == nil {
		return domain.WorkingHours{}, false
	}
	return domain.WorkingHours{
		Start: types.TimeString(*day.OpenTime),
		End:   types.TimeString(*day.CloseTime),
	}, true
}

// breakWindowFromSchedule извлекает перерыв из расписания дня
// Некорректные границы перерыва считаются его отсутствием
func breakWindowFromSchedule(day crmservice.DaySchedule) (*domain.BreakWindow, bool) {
	if !day.HasBreak() {
		return nil, true
	}

	start, errStart := types.NewTimeStringFromString(*day.BreakStart)
	end, errEnd := types.NewTimeStringFromString(*day.BreakEnd)
	if errStart != nil || errEnd != nil {
		return nil, false
	}

	return &domain.BreakWindow{Start: start, End: end}, true
}

// bookedIntervalsFromAppointments собирает занятые интервалы из активных записей
func bookedIntervalsFromAppointments(appointments []*domain.Appointment) ([]domain.BookedInterval, int) {
	intervals := make([]domain.BookedInterval, 0, len(appointments))
	skipped := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		interval, ok := appt.BookedInterval()
		if !ok {
			skipped++
			continue
		}
		intervals = append(intervals, interval)
	}

	return intervals, skipped
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
