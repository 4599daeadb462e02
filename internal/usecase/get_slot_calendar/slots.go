package get_slot_calendar

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// resolveWeek строит сетку на семь дней начиная с start
func resolveWeek(
	venue *domain.Venue,
	start time.Time,
	bookings []*domain.Booking,
	blocks []*domain.BlockedSlot,
	holds map[domain.SlotKey]string,
	now time.Time,
) []domain.DaySlots {
	days := make([]domain.DaySlots, 0, domain.DaysInWeek)

	for d := 0; d < domain.DaysInWeek; d++ {
		day := start.AddDate(0, 0, d)
		days = append(days, domain.DaySlots{
			Date:  day,
			Slots: resolveDay(venue, day, bookings, blocks, holds, now),
		})
	}

	return days
}

// resolveDay вычисляет статусы часовых слотов дня в пределах [open, close).
// Закрытие в 00:00 трактуется как 24.
func resolveDay(
	venue *domain.Venue,
	day time.Time,
	bookings []*domain.Booking,
	blocks []*domain.BlockedSlot,
	holds map[domain.SlotKey]string,
	now time.Time,
) []domain.Slot {
	open, closeHour := venue.OperatingHours()
	if closeHour <= open {
		return []domain.Slot{}
	}

	slots := make([]domain.Slot, 0, closeHour-open)
	for h := open; h < closeHour; h++ {
		slot := resolveSlot(day, h, bookings, blocks, now)

		// удержание показываем только поверх свободного слота
		if slot.Status == domain.SlotAvailable {
			if _, held := holds[domain.SlotKey{VenueID: venue.ID, Date: day, Hour: h}]; held {
				slot.Status = domain.SlotHeld
			}
		}

		slots = append(slots, slot)
	}

	return slots
}

// resolveSlot порядок проверок: брони, затем блокировки, затем прошедшее время.
// Активная бронь важнее отменённой; среди равных берётся первая.
func resolveSlot(day time.Time, hour int, bookings []*domain.Booking, blocks []*domain.BlockedSlot, now time.Time) domain.Slot {
	slot := domain.Slot{
		Date:      day,
		Hour:      hour,
		StartTime: types.MustFromHour(hour),
		EndTime:   types.MustFromHour(hour + 1),
		Status:    domain.SlotAvailable,
	}

	if b := coveringBooking(day, hour, bookings); b != nil {
		switch b.Status {
		case domain.StatusCancelled:
			slot.Status = domain.SlotCancelled
		case domain.StatusCompleted:
			slot.Status = domain.SlotCompleted
		default:
			slot.Status = domain.SlotBooked
		}
		slot.BookingID = ptr.Ptr(b.ID)
		slot.CustomerName = ptr.Ptr(b.CustomerName)
		return slot
	}

	for _, bl := range blocks {
		if bl.Covers(day, hour) {
			slot.Status = domain.SlotBlocked
			slot.BlockReason = bl.Reason
			return slot
		}
	}

	if slotStart(day, hour, now.Location()).Before(now) {
		slot.Status = domain.SlotPast
	}

	return slot
}

// coveringBooking первая неотменённая бронь на час, иначе первая отменённая
func coveringBooking(day time.Time, hour int, bookings []*domain.Booking) *domain.Booking {
	var cancelled *domain.Booking
	for _, b := range bookings {
		if !b.Covers(day, hour) {
			continue
		}
		if !b.IsCancelled() {
			return b
		}
		if cancelled == nil {
			cancelled = b
		}
	}
	return cancelled
}

// slotStart момент начала слота в часовом поясе площадки
func slotStart(day time.Time, hour int, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, loc)
}
