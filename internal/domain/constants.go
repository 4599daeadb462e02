package domain

// Booking constraints
const (
	SlotDurationMinutes = 60 // only whole-hour slots are used
	MinDurationHours    = 1
	MaxDurationHours    = 4
	DaysInWeek          = 7
	MaxNotesLength      = 500
	MaxBlockReasonLen   = 250
	TicketCodeLength    = 8
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses statuses that do not occupy a slot
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// OccupyingStatuses statuses that occupy a slot and take part in conflict checks
var OccupyingStatuses = []BookingStatus{
	StatusBooked,
	StatusCompleted,
}
