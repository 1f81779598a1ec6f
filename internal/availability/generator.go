package availability

import (
	"fmt"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
)

// GenerateSlots produces the raster of candidate meeting start times for one
// working day: one slot every intervalMinutes starting at workingHours.Start,
// stopping strictly before workingHours.End.
//
// The grid is determined by start times only: a slot is emitted even when
// start + durationMinutes extends past the end of the working day. Whether
// the full meeting fits is decided later against break windows, availability
// windows and existing appointments, not against the closing time.
//
// Start >= End yields an empty sequence and no error (closed day). The
// function is pure: the same inputs always produce the same ordered sequence.
func GenerateSlots(workingHours domain.WorkingHours, intervalMinutes, durationMinutes int) ([]domain.TimeSlot, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: interval must be positive, got %d", ErrInvalidConfiguration, intervalMinutes)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidConfiguration, durationMinutes)
	}

	if err := workingHours.Start.Validate(); err != nil {
		return nil, fmt.Errorf("%w: start: %v", ErrInvalidWorkingHours, err)
	}
	if err := workingHours.End.Validate(); err != nil {
		return nil, fmt.Errorf("%w: end: %v", ErrInvalidWorkingHours, err)
	}

	// Start >= End - закрытый день, не ошибка
	if !workingHours.Start.IsBefore(workingHours.End) {
		return []domain.TimeSlot{}, nil
	}

	slots := make([]domain.TimeSlot, 0)
	current := workingHours.Start

	for current.IsBefore(workingHours.End) {
		slots = append(slots, domain.TimeSlot{
			StartTime:       current,
			DurationMinutes: durationMinutes,
		})

		next, err := current.AddMinutes(intervalMinutes)
		if err != nil {
			// Следующий шаг пересёк полночь - сетка закончилась
			break
		}
		current = next
	}

	return slots, nil
}
