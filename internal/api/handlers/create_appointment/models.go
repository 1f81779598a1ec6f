package create_appointment

import (
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	createAppointment "github.com/AlqamaShuja/educat-scheduling-service/internal/usecase/create_appointment"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	LeadID          int64   `json:"leadId"`
	ConsultantID    int64   `json:"consultantId"`
	OfficeID        int64   `json:"officeId"`
	Date            string  `json:"date"`      // "2025-10-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	LeadID          int64   `json:"leadId"`
	ConsultantID    int64   `json:"consultantId"`
	OfficeID        int64   `json:"officeId"`
	CreatedByUserID int64   `json:"createdByUserId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	LeadName        string  `json:"leadName"`
	LeadPhone       *string `json:"leadPhone,omitempty"`
	ConsultantName  string  `json:"consultantName"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CreatedByUserID: userID,
		LeadID:          r.LeadID,
		ConsultantID:    r.ConsultantID,
		OfficeID:        r.OfficeID,
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		LeadID:          resp.LeadID,
		ConsultantID:    resp.ConsultantID,
		OfficeID:        resp.OfficeID,
		CreatedByUserID: resp.CreatedByUserID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		LeadName:        resp.LeadName,
		LeadPhone:       resp.LeadPhone,
		ConsultantName:  resp.ConsultantName,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
