package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Ticket payload encoded into the scannable code of a booking.
// Not signed, used only for visual verification at the venue.
type Ticket struct {
	Code      string `json:"code"`
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// NewTicketCode returns an 8-character upper-case code derived from a random UUID
func NewTicketCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:TicketCodeLength])
}

// TicketFor builds the ticket payload of a booking
func TicketFor(b *Booking) Ticket {
	return Ticket{
		Code:      b.TicketCode,
		BookingID: b.ID,
		Date:      b.BookingDate.Format(DateFormat),
		Time:      fmt.Sprintf("%s-%s", b.StartTime, b.EndTime),
	}
}
