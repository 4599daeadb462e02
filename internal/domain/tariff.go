package domain

import "time"

// Tariff is a venue's price table
type Tariff struct {
	BasePrice    float64
	Price1h      *float64
	Price2h      *float64
	Price3h      *float64
	WeekdayPrice *float64
	WeekendPrice *float64
}

// Price resolves the amount for a booking of durationHours on date.
// First applicable rule wins: package price for 1/2/3 hours, then
// weekend or weekday hourly price, then the base hourly price.
func (t Tariff) Price(durationHours int, date time.Time) float64 {
	if pkg := t.packagePrice(durationHours); pkg != nil {
		return *pkg
	}

	hours := float64(durationHours)
	if IsWeekend(date) {
		if t.WeekendPrice != nil {
			return *t.WeekendPrice * hours
		}
	} else if t.WeekdayPrice != nil {
		return *t.WeekdayPrice * hours
	}

	return t.BasePrice * hours
}

func (t Tariff) packagePrice(durationHours int) *float64 {
	switch durationHours {
	case 1:
		return t.Price1h
	case 2:
		return t.Price2h
	case 3:
		return t.Price3h
	default:
		return nil
	}
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
