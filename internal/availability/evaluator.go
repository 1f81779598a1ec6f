package availability

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
)

// EvaluationInput everything the evaluator needs to classify slots of one
// consultant on one day. The evaluator performs no I/O and never reads the
// system clock; callers pass Now explicitly. All timestamps are wall-clock
// in the location of Date.
type EvaluationInput struct {
	Date         time.Time
	ConsultantID int64
	Break        *domain.BreakWindow         // nil = перерыва нет
	Windows      []domain.AvailabilityWindow // окна доступности консультантов
	Booked       []domain.BookedInterval     // существующие записи на эту дату
	Now          time.Time
}

// EvaluatedSlot a candidate slot together with its computed status
type EvaluatedSlot struct {
	Slot   domain.TimeSlot
	Status domain.SlotStatus
}

// Evaluate classifies a single candidate slot. Checks are applied in order
// and short-circuit: past, break window, consultant day, consultant
// intervals, conflicts. The advisory "limited" status is assigned only when
// every hard check passed.
//
// Malformed inputs never panic: an unparsable slot time blocks the slot,
// while unparsable break bounds or allowed intervals are treated as absent.
func Evaluate(slot domain.TimeSlot, in EvaluationInput) domain.SlotStatus {
	// Некорректное время слота - защитно считаем слот занятым
	slotStart, err := slot.StartTime.Combine(in.Date)
	if err != nil {
		return domain.SlotStatusUnavailable
	}
	slotEnd := slotStart.Add(time.Duration(slot.DurationMinutes) * time.Minute)

	// 1. Слот в прошлом
	if slotStart.Before(in.Now) {
		return domain.SlotStatusPast
	}

	// 2. Пересечение с перерывом: блокируется, если начало ИЛИ конец слота
	// попадает в [breakStart, breakEnd)
	if in.Break != nil && overlapsBreak(slotStart, slotEnd, *in.Break, in.Date) {
		return domain.SlotStatusUnavailable
	}

	// 3-4. Окно доступности консультанта
	if window := findWindow(in.Windows, in.ConsultantID); window != nil {
		if !window.IsAvailable {
			return domain.SlotStatusUnavailable
		}
		if len(window.AllowedIntervals) > 0 && !fitsAllowedIntervals(slotStart, slotEnd, window.AllowedIntervals, in.Date) {
			return domain.SlotStatusUnavailable
		}
	}

	// 5. Конфликты с существующими записями
	for _, booked := range in.Booked {
		if !booked.IsValid() {
			// Нарушен инвариант Start < End - интервал пропускаем
			continue
		}
		if conflicts(slotStart, slotEnd, booked) {
			return domain.SlotStatusUnavailable
		}
	}

	// 6. Рядом начинается другая запись - слот доступен, но "limited"
	for _, booked := range in.Booked {
		if !booked.IsValid() {
			continue
		}
		delta := booked.Start.Sub(slotStart)
		if delta > 0 && delta <= domain.NearMissWindowMinutes*time.Minute {
			return domain.SlotStatusLimited
		}
	}

	return domain.SlotStatusAvailable
}

// EvaluateAll classifies every slot of a generated sequence, preserving order
func EvaluateAll(slots []domain.TimeSlot, in EvaluationInput) []EvaluatedSlot {
	result := make([]EvaluatedSlot, len(slots))
	for i, slot := range slots {
		result[i] = EvaluatedSlot{Slot: slot, Status: Evaluate(slot, in)}
	}
	return result
}

// overlapsBreak проверяет попадание начала или конца слота в перерыв.
// Частичное пересечение по любому краю блокирует слот.
// Некорректные границы перерыва считаются отсутствием перерыва.
func overlapsBreak(slotStart, slotEnd time.Time, brk domain.BreakWindow, date time.Time) bool {
	breakStart, err := brk.Start.Combine(date)
	if err != nil {
		return false
	}
	breakEnd, err := brk.End.Combine(date)
	if err != nil {
		return false
	}

	return inHalfOpen(slotStart, breakStart, breakEnd) || inHalfOpen(slotEnd, breakStart, breakEnd)
}

// inHalfOpen проверяет t ∈ [start, end)
func inHalfOpen(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// findWindow находит окно доступности консультанта
func findWindow(windows []domain.AvailabilityWindow, consultantID int64) *domain.AvailabilityWindow {
	for i := range windows {
		if windows[i].ConsultantID == consultantID {
			return &windows[i]
		}
	}
	return nil
}

// fitsAllowedIntervals проверяет, что слот целиком лежит хотя бы в одном из
// разрешённых интервалов (границы включительно). Интервалы могут быть
// неотсортированы и пересекаться; интервалы с некорректными границами
// пропускаются.
func fitsAllowedIntervals(slotStart, slotEnd time.Time, intervals []domain.TimeInterval, date time.Time) bool {
	for _, iv := range intervals {
		ivStart, err := iv.Start.Combine(date)
		if err != nil {
			continue
		}
		ivEnd, err := iv.End.Combine(date)
		if err != nil {
			continue
		}

		if !slotStart.Before(ivStart) && !slotEnd.After(ivEnd) {
			return true
		}
	}
	return false
}

// conflicts проверяет пересечение слота с существующей записью:
// - начало слота внутри [booked.Start, booked.End), ИЛИ
// - конец слота внутри (booked.Start, booked.End], ИЛИ
// - слот целиком содержит запись.
// Соприкасающиеся интервалы (конец одного равен началу другого) не конфликтуют.
func conflicts(slotStart, slotEnd time.Time, booked domain.BookedInterval) bool {
	// Начало слота внутри записи
	if inHalfOpen(slotStart, booked.Start, booked.End) {
		return true
	}
	// Конец слота внутри записи: (Start, End]
	if slotEnd.After(booked.Start) && !slotEnd.After(booked.End) {
		return true
	}
	// Слот целиком содержит запись
	if !slotStart.After(booked.Start) && !slotEnd.Before(booked.End) {
		return true
	}
	return false
}
