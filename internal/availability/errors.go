package availability

import "errors"

var (
	// ErrInvalidParams возвращается при некорректных параметрах генерации слотов
	ErrInvalidParams = errors.New("availability: invalid slot parameters")
)
