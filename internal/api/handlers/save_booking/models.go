package save_booking

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	bookingModels "github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
	saveBooking "github.com/m04kA/SMC-TurfManager/internal/usecase/save_booking"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// NewCustomerRequest клиент, создаваемый из формы брони
type NewCustomerRequest struct {
	Name  string  `json:"name" validate:"required,max=200"`
	Phone string  `json:"phone" validate:"required,max=32"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// SaveBookingRequest HTTP request model
type SaveBookingRequest struct {
	CustomerID *int64              `json:"customerId,omitempty" validate:"omitempty,gt=0"`
	Customer   *NewCustomerRequest `json:"customer,omitempty"`

	BookingDate   string `json:"bookingDate" validate:"required"` // "2026-10-20"
	StartTime     string `json:"startTime" validate:"required"`   // "18:00"
	DurationHours int    `json:"durationHours" validate:"min=1,max=4"`

	DiscountAmount float64 `json:"discountAmount" validate:"gte=0"`
	AdvanceAmount  float64 `json:"advanceAmount" validate:"gte=0"`
	PaidAmount     float64 `json:"paidAmount" validate:"gte=0"`
	PaymentMode    *string `json:"paymentMode,omitempty" validate:"omitempty,oneof=cash upi card"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=1000"`

	HoldToken *string `json:"holdToken,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Без владельца скидка и оплаты не принимаются
func (r *SaveBookingRequest) ToUseCaseRequest(ownerID int64) (*saveBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &saveBooking.Request{
		OwnerID:       ownerID,
		CustomerID:    r.CustomerID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		Notes:         r.Notes,
		HoldToken:     r.HoldToken,
	}

	if r.Customer != nil {
		req.NewCustomer = &saveBooking.NewCustomer{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
			Email: r.Customer.Email,
		}
	}

	if ownerID > 0 {
		req.DiscountAmount = r.DiscountAmount
		req.AdvanceAmount = r.AdvanceAmount
		req.PaidAmount = r.PaidAmount
		if r.PaymentMode != nil {
			mode, err := bookingModels.ToDomainPaymentMode(*r.PaymentMode)
			if err != nil {
				return nil, err
			}
			req.PaymentMode = &mode
		}
	}

	return req, nil
}
