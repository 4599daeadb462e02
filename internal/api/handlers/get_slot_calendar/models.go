package get_slot_calendar

import (
	"github.com/m04kA/SMC-TurfManager/internal/domain"
	getSlotCalendar "github.com/m04kA/SMC-TurfManager/internal/usecase/get_slot_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	VenueID   int64         `json:"venueId"`
	VenueName string        `json:"venueName"`
	WeekStart string        `json:"weekStart"`
	WeekEnd   string        `json:"weekEnd"`
	OpenHour  int           `json:"openHour"`
	CloseHour int           `json:"closeHour"`
	Days      []DayResponse `json:"days"`
}

// DayResponse слоты одного дня
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse ячейка календаря
type SlotResponse struct {
	Hour         int     `json:"hour"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	Action       string  `json:"action"`
	BookingID    *int64  `json:"bookingId,omitempty"`
	CustomerName *string `json:"customerName,omitempty"`
	BlockReason  *string `json:"blockReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlotCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotResponse, len(day.Slots))
		for j := range day.Slots {
			slot := &day.Slots[j]
			slots[j] = SlotResponse{
				Hour:         slot.Hour,
				StartTime:    slot.StartTime.String(),
				EndTime:      slot.EndTime.String(),
				Status:       string(slot.Status),
				Action:       string(slot.Action()),
				BookingID:    slot.BookingID,
				CustomerName: slot.CustomerName,
				BlockReason:  slot.BlockReason,
			}
		}
		days[i] = DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: slots,
		}
	}

	return &CalendarResponse{
		VenueID:   resp.VenueID,
		VenueName: resp.VenueName,
		WeekStart: resp.WeekStart.Format(domain.DateFormat),
		WeekEnd:   resp.WeekEnd.Format(domain.DateFormat),
		OpenHour:  resp.OpenHour,
		CloseHour: resp.CloseHour,
		Days:      days,
	}
}
