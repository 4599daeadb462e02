package engines

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrVenueInactive возвращается для деактивированной площадки
	ErrVenueInactive = errors.New("venue is inactive")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidEngine возвращается при неизвестном виде или некорректной конфигурации движка
	ErrInvalidEngine = errors.New("invalid engine config")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
