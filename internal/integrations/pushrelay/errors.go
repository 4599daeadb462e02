package pushrelay

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushrelay client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе релея
	ErrInvalidResponse = errors.New("pushrelay client: invalid response")

	// ErrNotConfigured возвращается, если адрес релея не задан
	ErrNotConfigured = errors.New("pushrelay client: relay url is not configured")
)
