package availability

import (
	"fmt"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// SlotSelection the event value produced by a successful selection. The
// host forwards it to appointment creation; the engine itself holds no
// reference to the host.
type SlotSelection struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Display         string // например "09:30 - 10:30"
}

// Selection holds at most one selected slot per rendering context.
// Selecting a new slot replaces the previous one (exclusive choice).
type Selection struct {
	selected *SlotSelection
}

// Select attempts to select the given evaluated slot for the given date.
// Slots whose status is past or unavailable are silently rejected (no-op,
// false). A successful selection replaces any previous one.
func (s *Selection) Select(slot EvaluatedSlot, date time.Time) bool {
	if !slot.Status.IsSelectable() {
		return false
	}

	start, err := slot.Slot.StartTime.Combine(date)
	if err != nil {
		// Выбор слота с некорректным временем молча отклоняем
		return false
	}
	end := start.Add(time.Duration(slot.Slot.DurationMinutes) * time.Minute)

	s.selected = &SlotSelection{
		Date:            date,
		StartTime:       slot.Slot.StartTime,
		EndTime:         types.NewTimeString(end),
		DurationMinutes: slot.Slot.DurationMinutes,
		Display:         fmt.Sprintf("%s - %s", start.Format(domain.TimeFormat), end.Format(domain.TimeFormat)),
	}
	return true
}

// Selected returns the current selection, or nil if nothing is selected
func (s *Selection) Selected() *SlotSelection {
	return s.selected
}

// Clear drops the current selection
func (s *Selection) Clear() {
	s.selected = nil
}
