package get_consultant_appointments

import (
	"fmt"
	"strconv"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	consultantID int64,
	userID int64,
	officeIDStr string,
	statusStr string,
	dateStr string,
	startDateStr string,
	endDateStr string,
	includeInactiveStr string,
) (*models.GetConsultantAppointmentsRequest, error) {
	req := &models.GetConsultantAppointmentsRequest{
		UserID:          userID,
		ConsultantID:    consultantID,
		IncludeInactive: false, // По умолчанию только активные
	}

	// Парсим officeId если указан
	if officeIDStr != "" {
		officeID, err := strconv.ParseInt(officeIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.OfficeID = &officeID
	}

	// Парсим status если указан
	if statusStr != "" {
		req.Status = &statusStr
	}

	// date задает один день; startDate/endDate задают период
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else if startDateStr != "" && endDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		if endDate.Before(startDate) {
			return nil, fmt.Errorf("endDate is before startDate")
		}
		req.StartDate = &startDate
		req.EndDate = &endDate
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
