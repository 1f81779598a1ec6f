package set_consultant_availability

import (
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/schedule/models"
)

// SetAvailabilityRequest HTTP request model
type SetAvailabilityRequest struct {
	Date             string                   `json:"date"` // "2025-10-15"
	IsAvailable      bool                     `json:"isAvailable"`
	AllowedIntervals []models.IntervalPayload `json:"allowedIntervals,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SetAvailabilityRequest) ToServiceRequest(consultantID, userID int64) *models.SetAvailabilityRequest {
	return &models.SetAvailabilityRequest{
		UserID:           userID,
		ConsultantID:     consultantID,
		Date:             r.Date,
		IsAvailable:      r.IsAvailable,
		AllowedIntervals: r.AllowedIntervals,
	}
}
