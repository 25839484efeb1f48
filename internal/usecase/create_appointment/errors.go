package create_appointment

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_appointment: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	// или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrEventTypeNotFound возвращается, когда тип события не найден,
	// неактивен или принадлежит другому бизнесу
	ErrEventTypeNotFound = errors.New("create_appointment: event type not found")

	// ErrSlotNotAvailable возвращается, когда предложенное время пересекается
	// (с учётом буферов) с существующей записью
	ErrSlotNotAvailable = errors.New("create_appointment: time slot is not available")

	// ErrOutsideWorkingHours возвращается, когда предложенное время
	// не помещается в рабочие часы сотрудника
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside working hours")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrTooLateToBook возвращается при нарушении minimum notice
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
