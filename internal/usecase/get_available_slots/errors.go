package get_available_slots

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден
	ErrOfficeNotFound = errors.New("office not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден
	ErrConsultantNotFound = errors.New("consultant not found")

	// ErrConsultantNotAtOffice возвращается, когда консультант не работает в указанном офисе
	ErrConsultantNotAtOffice = errors.New("consultant does not work at this office")

	// ErrConsultantInactive возвращается, когда консультант деактивирован в CRM
	ErrConsultantInactive = errors.New("consultant is inactive")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("invalid date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
