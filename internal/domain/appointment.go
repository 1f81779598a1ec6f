package domain

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled         AppointmentStatus = "scheduled"
	StatusConfirmed         AppointmentStatus = "confirmed"
	StatusCompleted         AppointmentStatus = "completed"
	StatusCancelledByLead   AppointmentStatus = "cancelled_by_lead"
	StatusCancelledByOffice AppointmentStatus = "cancelled_by_office"
	StatusNoShow            AppointmentStatus = "no_show"
)

// Appointment represents a consultation meeting between a lead and a consultant
type Appointment struct {
	ID              int64
	LeadID          int64
	ConsultantID    int64
	OfficeID        int64
	CreatedByUserID int64 // ID сотрудника, создавшего запись (консультант или ресепшен)
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	LeadName       string
	LeadPhone      *string
	ConsultantName string
	Notes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelledByLead &&
		a.Status != StatusCancelledByOffice &&
		a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelledByLead || a.Status == StatusCancelledByOffice
}

// BookedInterval returns the absolute time interval the appointment occupies.
// Returns ok=false if the stored start time is malformed.
func (a *Appointment) BookedInterval() (BookedInterval, bool) {
	start, err := a.StartTime.Combine(a.Date)
	if err != nil {
		return BookedInterval{}, false
	}
	return BookedInterval{
		Start: start,
		End:   start.Add(time.Duration(a.DurationMinutes) * time.Minute),
	}, true
}

// ConsultantAppointmentsFilter фильтр для получения записей консультанта
type ConsultantAppointmentsFilter struct {
	ConsultantID    int64              // Обязательный параметр
	OfficeID        *int64             // Фильтр по офису (опционально)
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые записи и no-show
}
