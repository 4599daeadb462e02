package save_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// NewCustomer данные клиента, создаваемого прямо из формы брони
type NewCustomer struct {
	Name  string
	Phone string
	Email *string
}

// Request модель запроса на создание или изменение брони
type Request struct {
	BookingID *int64 // nil - создание, иначе изменение
	OwnerID   int64  // 0 для публичной страницы бронирования
	VenueID   int64  // При изменении берётся из брони

	CustomerID  *int64       // Существующий клиент
	NewCustomer *NewCustomer // Или новый клиент

	Date          time.Time
	StartTime     types.TimeString
	DurationHours int

	DiscountAmount float64
	AdvanceAmount  float64
	PaidAmount     float64
	PaymentMode    *domain.PaymentMode
	Notes          *string

	HoldToken *string // Токен удержания слотов, если клиент их удерживал
}

// IsUpdate true для изменения существующей брони
func (r *Request) IsUpdate() bool {
	return r.BookingID != nil
}

// Response сохранённая бронь
type Response struct {
	Booking *domain.Booking
	Created bool
}
