package venues

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrVenueInactive возвращается для деактивированной площадки
	ErrVenueInactive = errors.New("venue is inactive")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidHours возвращается при некорректных часах работы
	ErrInvalidHours = errors.New("invalid operating hours")

	// ErrInvalidTariff возвращается при некорректном тарифе
	ErrInvalidTariff = errors.New("invalid tariff")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
