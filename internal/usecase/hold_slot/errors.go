package hold_slot

import "errors"

var (
	// ErrHoldsDisabled возвращается, когда Redis не настроен
	ErrHoldsDisabled = errors.New("hold_slot: holds are disabled")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("hold_slot: venue not found")

	// ErrVenueInactive возвращается для деактивированной площадки
	ErrVenueInactive = errors.New("hold_slot: venue is inactive")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за часы работы
	ErrOutsideOperatingHours = errors.New("hold_slot: outside operating hours")

	// ErrSlotNotAvailable возвращается, когда час уже занят активной бронью
	ErrSlotNotAvailable = errors.New("hold_slot: slot is already booked")

	// ErrSlotBlocked возвращается, когда час закрыт владельцем
	ErrSlotBlocked = errors.New("hold_slot: slot is blocked")

	// ErrSlotInPast возвращается для уже начавшихся слотов
	ErrSlotInPast = errors.New("hold_slot: slot is in the past")

	// ErrSlotHeld возвращается, когда хотя бы один слот удерживает другой клиент
	ErrSlotHeld = errors.New("hold_slot: slot is held by another client")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("hold_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("hold_slot: internal error")
)
