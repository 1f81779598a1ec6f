package cancel_appointment

import (
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments/models"
)

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancelledBy        string `json:"cancelledBy"` // "lead" или "office"
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelAppointmentRequest) ToServiceRequest(userID int64) *models.CancelAppointmentRequest {
	return &models.CancelAppointmentRequest{
		UserID:             userID,
		CancelledBy:        r.CancelledBy,
		CancellationReason: r.CancellationReason,
	}
}
