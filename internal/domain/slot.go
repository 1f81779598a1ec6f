package domain

import "github.com/AlqamaShuja/educat-scheduling-service/pkg/types"

// SlotStatus represents the computed status of a candidate time slot
type SlotStatus string

const (
	// SlotStatusPast slot start time has already elapsed
	SlotStatusPast SlotStatus = "past"
	// SlotStatusUnavailable slot fails break, availability or conflict checks
	SlotStatusUnavailable SlotStatus = "unavailable"
	// SlotStatusLimited slot is bookable but another appointment starts soon after it
	SlotStatusLimited SlotStatus = "limited"
	// SlotStatusAvailable slot has no conflicts
	SlotStatusAvailable SlotStatus = "available"
)

// IsSelectable returns true if a slot with this status may be selected for booking
func (s SlotStatus) IsSelectable() bool {
	return s == SlotStatusAvailable || s == SlotStatusLimited
}

// TimeSlot represents a candidate meeting start time within a working day.
// Slots are generated fresh for every request and are never persisted.
type TimeSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// HourBucket returns the hour-of-day the slot belongs to, used for grouping.
// Returns -1 for a malformed start time.
func (s TimeSlot) HourBucket() int {
	return s.StartTime.Hour()
}

// WorkingHours daily open/close bounds for slot generation
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// BreakWindow recurring daily interval during which no slot may start or end
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}
