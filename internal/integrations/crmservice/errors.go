package crmservice

import "errors"

var (
	// ErrOfficeNotFound возвращается, когда офис не найден в CRM
	ErrOfficeNotFound = errors.New("crmservice: office not found")

	// ErrConsultantNotFound возвращается, когда консультант не найден в CRM
	ErrConsultantNotFound = errors.New("crmservice: consultant not found")

	// ErrLeadNotFound возвращается, когда лид не найден в CRM
	ErrLeadNotFound = errors.New("crmservice: lead not found")

	// ErrInvalidResponse возвращается при некорректном ответе CRM
	ErrInvalidResponse = errors.New("crmservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("crmservice: internal error")
)
