package create_appointment

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = errors.New("create_appointment: office not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("create_appointment: consultant not found")

	// ErrConsultantNotAtOffice возвращается, когда консультант не работает в указанном офисе
	ErrConsultantNotAtOffice = errors.New("create_appointment: consultant does not work at this office")

	// ErrConsultantInactive возвращается, когда консультант деактивирован в CRM
	ErrConsultantInactive = errors.New("create_appointment: consultant is inactive")

	// ErrLeadNotFound возвращается, когда лид не найден
	ErrLeadNotFound = errors.New("create_appointment: lead not found")

	// ErrInvalidDate возвращается при некорректной дате встречи
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrOfficeClosed возвращается, когда офис закрыт в указанную дату
	ErrOfficeClosed = errors.New("create_appointment: office is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время начала не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот недоступен
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrTooLateToBook возвращается, когда запись нарушает minNoticeMinutes
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
