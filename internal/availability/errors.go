package availability

import "errors"

var (
	// ErrInvalidConfiguration возвращается при недопустимых параметрах генерации
	// (неположительный интервал или длительность)
	ErrInvalidConfiguration = errors.New("availability: invalid configuration")

	// ErrInvalidWorkingHours возвращается, когда границы рабочих часов не парсятся
	ErrInvalidWorkingHours = errors.New("availability: invalid working hours")
)
