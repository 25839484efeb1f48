package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrEventTypeNotFound возвращается, когда тип события не найден
	ErrEventTypeNotFound = errors.New("catalog.repository: event type not found")

	// ErrSlugTaken возвращается, когда slug уже занят в рамках бизнеса
	ErrSlugTaken = errors.New("catalog.repository: event type slug already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
