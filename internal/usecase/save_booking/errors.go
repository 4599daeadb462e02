package save_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("save_booking: venue not found")

	// ErrVenueInactive возвращается для деактивированной площадки
	ErrVenueInactive = errors.New("save_booking: venue is inactive")

	// ErrAccessDenied возвращается, когда площадка принадлежит другому владельцу
	ErrAccessDenied = errors.New("save_booking: access denied")

	// ErrBookingNotFound возвращается, когда редактируемая бронь не найдена
	ErrBookingNotFound = errors.New("save_booking: booking not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден у владельца площадки
	ErrCustomerNotFound = errors.New("save_booking: customer not found")

	// ErrCustomerRequired возвращается без ссылки на клиента и без данных нового клиента
	ErrCustomerRequired = errors.New("save_booking: customer is required")

	// ErrCrossesMidnight возвращается, когда интервал заканчивается после 24:00
	ErrCrossesMidnight = errors.New("save_booking: booking crosses midnight")

	// ErrOutsideOperatingHours возвращается, когда интервал выходит за часы работы площадки
	ErrOutsideOperatingHours = errors.New("save_booking: outside operating hours")

	// ErrSlotInPast возвращается при бронировании уже начавшегося слота
	ErrSlotInPast = errors.New("save_booking: slot is in the past")

	// ErrSlotBlocked возвращается, когда интервал пересекается с блокировкой
	ErrSlotBlocked = errors.New("save_booking: slot is blocked")

	// ErrSlotHeld возвращается, когда слот удерживает другой клиент
	ErrSlotHeld = errors.New("save_booking: slot is held by another client")

	// ErrSlotNotAvailable возвращается, когда интервал занят другой бронью
	ErrSlotNotAvailable = errors.New("save_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("save_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("save_booking: internal error")
)
