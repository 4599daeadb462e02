package whatsapp

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Business API
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrInvalidPhone возвращается, если в номере получателя нет цифр
	ErrInvalidPhone = errors.New("whatsapp client: invalid phone number")
)
