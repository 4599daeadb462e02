package get_slot_calendar

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// Request модель запроса недельного календаря
type Request struct {
	VenueID int64     // ID площадки
	Date    time.Time // Любая дата недели, неделя начинается с понедельника
}

// Response недельная сетка слотов
type Response struct {
	VenueID   int64
	VenueName string
	WeekStart time.Time
	WeekEnd   time.Time
	OpenHour  int
	CloseHour int // 24 для закрытия в полночь
	Days      []domain.DaySlots
}
