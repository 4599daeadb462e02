package booking

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с другой активной бронью
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// Коды ошибок PostgreSQL, означающие проигранную гонку за слот
const (
	pqExclusionViolation   = "23P01"
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

// IsSlotConflict true, если ошибка драйвера означает пересечение броней.
// Нужна и вызывающим транзакцию: сбой сериализации может прийти на COMMIT
func IsSlotConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code {
	case pqExclusionViolation, pqSerializationFailure:
		return true
	case pqUniqueViolation:
		// уникален и ticket_code, его коллизия не конфликт слота
		return pqErr.Constraint != "bookings_ticket_code_key"
	}
	return false
}
