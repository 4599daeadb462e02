package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	minutesInDay = 24 * 60
	layout       = "15:04"
)

var (
	// ErrInvalidFormat возвращается, если строка не в формате HH:MM
	ErrInvalidFormat = errors.New("invalid time string format")

	// ErrOutOfRange возвращается, если время выходит за пределы суток
	ErrOutOfRange = errors.New("time string out of range")
)

// TimeString время суток в формате "HH:MM".
// Допустимый диапазон 00:00..24:00, где "24:00" означает конец суток.
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString парсит и нормализует строку "H:MM", "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// NewTimeStringFromHour создает TimeString для целого часа (0..24)
func NewTimeStringFromHour(hour int) (TimeString, error) {
	if hour < 0 || hour > 24 {
		return "", fmt.Errorf("%w: hour %d", ErrOutOfRange, hour)
	}
	return fromMinutes(hour * 60), nil
}

// MustFromHour как NewTimeStringFromHour, но паникует на некорректном часе
func MustFromHour(hour int) TimeString {
	ts, err := NewTimeStringFromHour(hour)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат и диапазон
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes возвращает количество минут от начала суток.
// Для невалидного значения возвращает -1.
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// Hour возвращает час (0..24)
func (t TimeString) Hour() int {
	m := t.Minutes()
	if m < 0 {
		return -1
	}
	return m / 60
}

// IsHourAligned true, если минуты равны нулю
func (t TimeString) IsHourAligned() bool {
	m := t.Minutes()
	return m >= 0 && m%60 == 0
}

// AddMinutes прибавляет минуты, не переходя через конец суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	m, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	res := m + minutes
	if res < 0 || res > minutesInDay {
		return "", fmt.Errorf("%w: %s %+d min", ErrOutOfRange, t, minutes)
	}
	return fromMinutes(res), nil
}

// AddHours прибавляет часы, не переходя через конец суток
func (t TimeString) AddHours(hours int) (TimeString, error) {
	return t.AddMinutes(hours * 60)
}

// IsBefore true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени для указанной даты в её часовом поясе
func (t TimeString) On(date time.Time) time.Time {
	m := t.Minutes()
	if m < 0 {
		m = 0
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).
		Add(time.Duration(m) * time.Minute)
}

// Scan реализует sql.Scanner для колонок TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidFormat, src)
	}
}

func (t *TimeString) scanString(s string) error {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	if len(parts) == 3 {
		// секунды у колонок TIME всегда нулевые, но проверим формат
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec != 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	total := hours*60 + minutes
	if total > minutesInDay {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return total, nil
}

func fromMinutes(m int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
}
