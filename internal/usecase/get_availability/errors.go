package get_availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("get_availability: staff not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	// или принадлежит другому бизнесу
	ErrServiceNotFound = errors.New("get_availability: service not found")

	// ErrEventTypeNotFound возвращается, когда тип события не найден,
	// неактивен или принадлежит другому бизнесу
	ErrEventTypeNotFound = errors.New("get_availability: event type not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
