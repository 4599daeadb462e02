package get_slot_calendar

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("get_slot_calendar: venue not found")

	// ErrVenueInactive возвращается для деактивированной площадки
	ErrVenueInactive = errors.New("get_slot_calendar: venue is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slot_calendar: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slot_calendar: internal error")
)
