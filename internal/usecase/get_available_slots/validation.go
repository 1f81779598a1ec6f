package get_available_slots

import (
	"fmt"
	"time"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/internal/integrations/crmservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OfficeID <= 0 {
		return fmt.Errorf("%w: officeID must be positive", ErrInvalidInput)
	}

	if req.ConsultantID <= 0 {
		return fmt.Errorf("%w: consultantID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 0 означает "взять из конфигурации", отрицательные значения недопустимы
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	if req.DurationMinutes > domain.MaxMeetingDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidInput, domain.MaxMeetingDurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата подходит для запроса слотов
func validateDate(requestDate time.Time, now time.Time, advanceBookingDays int) error {
	// Проверяем, что дата не в прошлом
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если advanceBookingDays = 0, нет ограничений на дату
	if advanceBookingDays == 0 {
		return nil
	}

	// Проверяем, что дата не превышает ограничение advanceBookingDays
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, advanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only request %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateConsultantAtOffice проверяет, что консультант работает в указанном офисе
func validateConsultantAtOffice(consultant *crmservice.Consultant, officeID int64) error {
	if !consultant.IsActive {
		return ErrConsultantInactive
	}
	for _, id := range consultant.OfficeIDs {
		if id == officeID {
			return nil
		}
	}
	return ErrConsultantNotAtOffice
}
