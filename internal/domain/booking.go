package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// BookingStatus represents the status of a booking.
// Flat enumeration, any status may be set by the owner.
type BookingStatus string

const (
	StatusBooked    BookingStatus = "booked"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusBooked, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PaymentStatus represents how much of the total has been collected
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentMode how the money was collected (recorded manually)
type PaymentMode string

const (
	PaymentModeCash PaymentMode = "cash"
	PaymentModeUPI  PaymentMode = "upi"
	PaymentModeCard PaymentMode = "card"
)

// IsValid returns true for known payment modes
func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard:
		return true
	}
	return false
}

// Booking represents a turf booking
type Booking struct {
	ID            int64
	VenueID       int64
	CustomerID    int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	DurationHours int
	Status        BookingStatus

	TotalAmount    float64
	DiscountAmount float64
	AdvanceAmount  float64
	PaidAmount     float64
	PendingAmount  float64
	PaymentStatus  PaymentStatus
	PaymentMode    *PaymentMode

	TicketCode string
	Notes      *string

	// Denormalized from customer for listings
	CustomerName  string
	CustomerPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OccupiesSlot returns true if the booking takes part in conflict checks
func (b *Booking) OccupiesSlot() bool {
	return !b.IsCancelled()
}

// Covers returns true if the booking interval [start, end) contains the hour on the given day
func (b *Booking) Covers(day time.Time, hour int) bool {
	if !SameDate(b.BookingDate, day) {
		return false
	}
	return b.StartTime.Hour() <= hour && hour < endHour(b.EndTime)
}

// ApplyPayments recalculates pending amount and payment status from the totals
func (b *Booking) ApplyPayments() {
	collected := b.AdvanceAmount + b.PaidAmount
	b.PendingAmount = b.TotalAmount - collected
	if b.PendingAmount < 0 {
		b.PendingAmount = 0
	}
	b.PaymentStatus = DerivePaymentStatus(b.TotalAmount, b.AdvanceAmount, b.PaidAmount)
}

// DerivePaymentStatus paid if advance+paid covers total, partial if anything was collected, pending otherwise
func DerivePaymentStatus(total, advance, paid float64) PaymentStatus {
	collected := advance + paid
	switch {
	case collected >= total:
		return PaymentPaid
	case collected > 0:
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID   int64          // Обязательный параметр
	StartDate time.Time      // Начало периода включительно
	EndDate   time.Time      // Конец периода включительно
	Status    *BookingStatus // Фильтр по статусу (опционально)
}

// SameDate compares calendar dates ignoring time and location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// endHour reads an end time of 00:00 as 24
func endHour(t types.TimeString) int {
	if t.Minutes() == 0 {
		return 24
	}
	return t.Hour()
}
