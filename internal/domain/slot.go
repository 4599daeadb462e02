package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// SlotStatus derived status of a one-hour slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
	SlotPast      SlotStatus = "past"
	SlotCancelled SlotStatus = "cancelled"
	SlotCompleted SlotStatus = "completed"
	SlotHeld      SlotStatus = "held"
)

// Slot is a computed view, never persisted
type Slot struct {
	Date      time.Time
	Hour      int
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    SlotStatus

	// Заполняются для booked/completed/cancelled
	BookingID    *int64
	CustomerName *string
	// Заполняется для blocked
	BlockReason *string
}

// Action what a click on the slot opens in the calendar
type SlotAction string

const (
	ActionOpenBooking SlotAction = "open_booking"
	ActionNewBooking  SlotAction = "new_booking"
	ActionNone        SlotAction = "none"
)

// Action booked cells open the existing booking, available cells open a pre-filled editor, the rest are inert
func (s *Slot) Action() SlotAction {
	switch s.Status {
	case SlotBooked:
		return ActionOpenBooking
	case SlotAvailable:
		return ActionNewBooking
	default:
		return ActionNone
	}
}

// DaySlots slots of one calendar day
type DaySlots struct {
	Date  time.Time
	Slots []Slot
}

// SlotKey identifies a slot for holds
type SlotKey struct {
	VenueID int64
	Date    time.Time
	Hour    int
}
