package models

import (
	"errors"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidCancelledBy возвращается при некорректном инициаторе отмены
	ErrInvalidCancelledBy = errors.New("invalid cancelledBy value")
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancelledBy        string `json:"cancelledBy"` // "lead" или "office"
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetConsultantAppointmentsRequest запрос на получение записей консультанта
type GetConsultantAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	ConsultantID    int64      `json:"consultantId"`
	OfficeID        *int64     `json:"officeId,omitempty"`        // Фильтр по офису (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые записи
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetConsultantAppointmentsRequest) ToDomainFilter() (domain.ConsultantAppointmentsFilter, error) {
	filter := domain.ConsultantAppointmentsFilter{
		ConsultantID:    r.ConsultantID,
		OfficeID:        r.OfficeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	LeadID          int64  `json:"leadId"`
	ConsultantID    int64  `json:"consultantId"`
	OfficeID        int64  `json:"officeId"`
	CreatedByUserID int64  `json:"createdByUserId"`
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Денормализованные данные
	LeadName       string  `json:"leadName"`
	LeadPhone      *string `json:"leadPhone,omitempty"`
	ConsultantName string  `json:"consultantName"`
	Notes          *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		LeadID:             a.LeadID,
		ConsultantID:       a.ConsultantID,
		OfficeID:           a.OfficeID,
		CreatedByUserID:    a.CreatedByUserID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		LeadName:           a.LeadName,
		LeadPhone:          a.LeadPhone,
		ConsultantName:     a.ConsultantName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(status) {
	case domain.StatusScheduled:
		return domain.StatusScheduled, nil
	case domain.StatusConfirmed:
		return domain.StatusConfirmed, nil
	case domain.StatusCompleted:
		return domain.StatusCompleted, nil
	case domain.StatusCancelledByLead:
		return domain.StatusCancelledByLead, nil
	case domain.StatusCancelledByOffice:
		return domain.StatusCancelledByOffice, nil
	case domain.StatusNoShow:
		return domain.StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToCancellationStatus конвертирует инициатора отмены в domain статус
func ToCancellationStatus(cancelledBy string) (domain.AppointmentStatus, error) {
	switch cancelledBy {
	case "lead":
		return domain.StatusCancelledByLead, nil
	case "office":
		return domain.StatusCancelledByOffice, nil
	default:
		return "", ErrInvalidCancelledBy
	}
}
