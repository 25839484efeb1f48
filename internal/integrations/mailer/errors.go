package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("mailer client: invalid response")

	// ErrDisabled возвращается, когда отправка уведомлений выключена конфигурацией
	ErrDisabled = errors.New("mailer client: notifications disabled")
)
