package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentMode возвращается при некорректном способе оплаты
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)

// Request модели

// ListVenueBookingsRequest запрос на получение броней площадки за период
type ListVenueBookingsRequest struct {
	OwnerID int64
	VenueID int64
	From    time.Time
	To      time.Time
	Status  *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListVenueBookingsRequest) ToDomainFilter() (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{
		VenueID:   r.VenueID,
		StartDate: r.From,
		EndDate:   r.To,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	OwnerID int64  `json:"-"`
	Status  string `json:"status" validate:"required,oneof=booked completed cancelled"`
}

// RecordPaymentRequest запрос на внесение оплаты
type RecordPaymentRequest struct {
	OwnerID     int64   `json:"-"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	PaymentMode *string `json:"paymentMode,omitempty" validate:"omitempty,oneof=cash upi card"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	VenueID       int64   `json:"venueId"`
	CustomerID    int64   `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	BookingDate   string  `json:"bookingDate"` // "2026-10-20"
	StartTime     string  `json:"startTime"`   // "18:00"
	EndTime       string  `json:"endTime"`     // "20:00"
	DurationHours int     `json:"durationHours"`
	Status        string  `json:"status"`

	TotalAmount    float64 `json:"totalAmount"`
	DiscountAmount float64 `json:"discountAmount"`
	AdvanceAmount  float64 `json:"advanceAmount"`
	PaidAmount     float64 `json:"paidAmount"`
	PendingAmount  float64 `json:"pendingAmount"`
	PaymentStatus  string  `json:"paymentStatus"`
	PaymentMode    *string `json:"paymentMode,omitempty"`

	TicketCode string  `json:"ticketCode"`
	Notes      *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// TicketResponse билет брони и строка для QR-кода
type TicketResponse struct {
	Ticket  domain.Ticket `json:"ticket"`
	Payload string        `json:"payload"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:             b.ID,
		VenueID:        b.VenueID,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		BookingDate:    b.BookingDate.Format(domain.DateFormat),
		StartTime:      b.StartTime.String(),
		EndTime:        b.EndTime.String(),
		DurationHours:  b.DurationHours,
		Status:         string(b.Status),
		TotalAmount:    b.TotalAmount,
		DiscountAmount: b.DiscountAmount,
		AdvanceAmount:  b.AdvanceAmount,
		PaidAmount:     b.PaidAmount,
		PendingAmount:  b.PendingAmount,
		PaymentStatus:  string(b.PaymentStatus),
		TicketCode:     b.TicketCode,
		Notes:          b.Notes,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}

	if b.PaymentMode != nil {
		mode := string(*b.PaymentMode)
		resp.PaymentMode = &mode
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainPaymentMode конвертирует строку в domain.PaymentMode с валидацией
func ToDomainPaymentMode(mode string) (domain.PaymentMode, error) {
	m := domain.PaymentMode(mode)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMode
	}
	return m, nil
}
