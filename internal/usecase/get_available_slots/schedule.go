package get_available_slots

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

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
// Некорректные границы перерыва считаются его отсутствием (защитный фолбэк);
// факт аномалии логирует вызывающая сторона
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
// Записи с некорректным временем начала пропускаются, их количество возвращается
// вторым значением для логирования
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
