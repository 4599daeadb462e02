package save_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.IsUpdate() {
		if *req.BookingID <= 0 {
			return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
		}
		if req.OwnerID <= 0 {
			return fmt.Errorf("%w: ownerID is required to edit a booking", ErrInvalidInput)
		}
	} else if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsHourAligned() || req.StartTime.Hour() >= 24 {
		return fmt.Errorf("%w: startTime must be a whole hour between 00:00 and 23:00", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationHours {
		return fmt.Errorf("%w: duration must be between %d and %d hours",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationHours)
	}

	if req.DiscountAmount < 0 || req.AdvanceAmount < 0 || req.PaidAmount < 0 {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	if req.PaymentMode != nil && !req.PaymentMode.IsValid() {
		return fmt.Errorf("%w: unknown payment mode %q", ErrInvalidInput, *req.PaymentMode)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return validateCustomer(req)
}

// validateCustomer клиент обязателен: ссылка на существующего или имя и телефон нового
func validateCustomer(req *Request) error {
	if req.CustomerID != nil {
		if *req.CustomerID <= 0 {
			return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
		}
		return nil
	}

	if req.NewCustomer == nil {
		return ErrCustomerRequired
	}

	if strings.TrimSpace(req.NewCustomer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.NewCustomer.Phone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	return nil
}

// endTime время окончания без перехода через полночь
func endTime(start types.TimeString, durationHours int) (types.TimeString, error) {
	end, err := start.AddHours(durationHours)
	if errors.Is(err, types.ErrOutOfRange) {
		return "", fmt.Errorf("%w: %s + %dh", ErrCrossesMidnight, start, durationHours)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return end, nil
}

// validateOperatingHours интервал должен укладываться в часы работы площадки
func validateOperatingHours(venue *domain.Venue, start, end types.TimeString) error {
	open, closeHour := venue.OperatingHours()
	if start.Hour() < open || end.Hour() > closeHour {
		return fmt.Errorf("%w: venue works %02d:00-%02d:00", ErrOutsideOperatingHours, open, closeHour)
	}
	return nil
}

// validateNotInPast начало брони не должно быть раньше текущего момента
func validateNotInPast(date time.Time, start types.TimeString, now time.Time) error {
	if start.On(inLocation(date, now.Location())).Before(now) {
		return ErrSlotInPast
	}
	return nil
}

// findBlock первая блокировка, пересекающая интервал
func findBlock(blocks []*domain.BlockedSlot, date time.Time, start, end types.TimeString) *domain.BlockedSlot {
	for _, bl := range blocks {
		for h := start.Hour(); h < end.Hour(); h++ {
			if bl.Covers(date, h) {
				return bl
			}
		}
	}
	return nil
}

// slotKeys ключи удержаний для каждого часа интервала
func slotKeys(venueID int64, date time.Time, start, end types.TimeString) []domain.SlotKey {
	keys := make([]domain.SlotKey, 0, end.Hour()-start.Hour())
	for h := start.Hour(); h < end.Hour(); h++ {
		keys = append(keys, domain.SlotKey{VenueID: venueID, Date: date, Hour: h})
	}
	return keys
}

// calculateTotal цена по тарифу минус скидка, не меньше нуля
func calculateTotal(tariff domain.Tariff, durationHours int, date time.Time, discount float64) float64 {
	total := tariff.Price(durationHours, date) - discount
	if total < 0 {
		return 0
	}
	return total
}

// inLocation та же календарная дата в другом часовом поясе
func inLocation(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// dateOnly отбрасывает время
func dateOnly(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
