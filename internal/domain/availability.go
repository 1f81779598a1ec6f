package domain

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// TimeInterval a time-of-day interval within a single day
type TimeInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// AvailabilityWindow consultant-specific schedule override for one day.
// If IsAvailable is false the whole day is blocked for the consultant.
// A non-empty AllowedIntervals set restricts bookable slots to those lying
// fully inside at least one interval; intervals are not required to be
// sorted or non-overlapping. An empty set means available all day.
type AvailabilityWindow struct {
	ID               int64
	ConsultantID     int64
	Date             time.Time
	IsAvailable      bool
	AllowedIntervals []TimeInterval
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsUnrestricted returns true if the window imposes no interval restriction
func (w *AvailabilityWindow) IsUnrestricted() bool {
	return w.IsAvailable && len(w.AllowedIntervals) == 0
}

// BookedInterval an existing commitment a new slot must not overlap,
// expressed as absolute timestamps. Invariant: Start < End.
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval satisfies Start < End
func (b BookedInterval) IsValid() bool {
	return b.Start.Before(b.End)
}
