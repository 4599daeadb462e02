package get_slot_calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// weekStart возвращает понедельник недели, в которую попадает дата
func weekStart(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// weekSlotKeys все слоты недели в пределах рабочих часов площадки
func weekSlotKeys(venue *domain.Venue, start time.Time) []domain.SlotKey {
	open, closeHour := venue.OperatingHours()
	keys := make([]domain.SlotKey, 0, domain.DaysInWeek*(closeHour-open))

	for d := 0; d < domain.DaysInWeek; d++ {
		day := start.AddDate(0, 0, d)
		for h := open; h < closeHour; h++ {
			keys = append(keys, domain.SlotKey{VenueID: venue.ID, Date: day, Hour: h})
		}
	}
	return keys
}
