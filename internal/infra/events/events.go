package events

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

// EventType тип доменного события брони
type EventType string

const (
	BookingCreated       EventType = "booking.created"
	BookingUpdated       EventType = "booking.updated"
	BookingStatusChanged EventType = "booking.status_changed"
	BookingPaymentAdded  EventType = "booking.payment_recorded"
)

// BookingEvent полезная нагрузка события
type BookingEvent struct {
	Type          EventType `json:"type"`
	BookingID     int64     `json:"booking_id"`
	VenueID       int64     `json:"venue_id"`
	CustomerID    int64     `json:"customer_id"`
	BookingDate   string    `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   float64   `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingEvent собирает событие из брони
func NewBookingEvent(eventType EventType, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		VenueID:       b.VenueID,
		CustomerID:    b.CustomerID,
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		TotalAmount:   b.TotalAmount,
		OccurredAt:    at,
	}
}
