package get_slot_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/pkg/ptr"
	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

var (
	monday  = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	tuesday = monday.AddDate(0, 0, 1)
	// понедельник 12:30, всё раньше - прошлое
	testNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
)

func testVenue(open, close types.TimeString) *domain.Venue {
	return &domain.Venue{ID: 1, OpenTime: open, CloseTime: close, IsActive: true}
}

func statusAt(slots []domain.Slot, hour int) domain.SlotStatus {
	for _, s := range slots {
		if s.Hour == hour {
			return s.Status
		}
	}
	return ""
}

func TestResolveDay_MidnightClosing(t *testing.T) {
	midnight := resolveDay(testVenue("06:00", "00:00"), tuesday, nil, nil, nil, testNow)
	explicit := resolveDay(testVenue("06:00", "24:00"), tuesday, nil, nil, nil, testNow)

	require.Len(t, midnight, 18)
	assert.Equal(t, len(explicit), len(midnight))
	assert.Equal(t, 23, midnight[len(midnight)-1].Hour)
	assert.Equal(t, "24:00", midnight[len(midnight)-1].EndTime.String())
}

func TestResolveDay_BookingStatuses(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: tuesday, StartTime: "08:00", EndTime: "10:00", Status: domain.StatusBooked, CustomerName: "Ravi"},
		{ID: 2, BookingDate: tuesday, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusCompleted},
		{ID: 3, BookingDate: tuesday, StartTime: "11:00", EndTime: "12:00", Status: domain.StatusCancelled},
		{ID: 4, BookingDate: monday, StartTime: "14:00", EndTime: "15:00", Status: domain.StatusBooked},
	}

	slots := resolveDay(testVenue("06:00", "22:00"), tuesday, bookings, nil, nil, testNow)

	assert.Equal(t, domain.SlotAvailable, statusAt(slots, 7))
	assert.Equal(t, domain.SlotBooked, statusAt(slots, 8))
	assert.Equal(t, domain.SlotBooked, statusAt(slots, 9))
	assert.Equal(t, domain.SlotCompleted, statusAt(slots, 10))
	assert.Equal(t, domain.SlotCancelled, statusAt(slots, 11))
	assert.Equal(t, domain.SlotAvailable, statusAt(slots, 14), "booking on another day")

	booked := slots[8-6]
	require.NotNil(t, booked.BookingID)
	assert.Equal(t, int64(1), *booked.BookingID)
	assert.Equal(t, "Ravi", *booked.CustomerName)
	assert.Equal(t, domain.ActionOpenBooking, booked.Action())
	assert.Equal(t, domain.ActionNewBooking, slots[0].Action())
	assert.Equal(t, domain.ActionNone, slots[10-6].Action())
}

func TestResolveDay_ActiveBookingNeverAvailable(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: monday, StartTime: "06:00", EndTime: "10:00", Status: domain.StatusBooked},
		{ID: 2, BookingDate: monday, StartTime: "18:00", EndTime: "20:00", Status: domain.StatusCompleted},
	}
	holds := map[domain.SlotKey]string{
		{VenueID: 1, Date: monday, Hour: 18}: "token",
	}

	slots := resolveDay(testVenue("06:00", "00:00"), monday, bookings, nil, holds, testNow)
	for _, b := range bookings {
		for h := b.StartTime.Hour(); h < b.EndTime.Hour(); h++ {
			status := statusAt(slots, h)
			assert.Contains(t, []domain.SlotStatus{domain.SlotBooked, domain.SlotCompleted}, status, "hour %d", h)
		}
	}
}

func TestResolveDay_ActiveBookingWinsOverCancelled(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: tuesday, StartTime: "17:00", EndTime: "19:00", Status: domain.StatusCancelled, CustomerName: "Old"},
		{ID: 2, BookingDate: tuesday, StartTime: "18:00", EndTime: "19:00", Status: domain.StatusBooked, CustomerName: "New"},
	}

	slots := resolveDay(testVenue("06:00", "22:00"), tuesday, bookings, nil, nil, testNow)

	assert.Equal(t, domain.SlotCancelled, statusAt(slots, 17))

	rebooked := slots[18-6]
	assert.Equal(t, domain.SlotBooked, rebooked.Status)
	require.NotNil(t, rebooked.BookingID)
	assert.Equal(t, int64(2), *rebooked.BookingID)
	assert.Equal(t, "New", *rebooked.CustomerName)
	assert.Equal(t, domain.ActionOpenBooking, rebooked.Action())
}

func TestResolveDay_PriorityOrder(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, BookingDate: monday, StartTime: "09:00", EndTime: "10:00", Status: domain.StatusBooked},
	}
	blocks := []*domain.BlockedSlot{
		{ID: 1, BlockDate: monday, StartTime: "09:00", EndTime: "11:00", Reason: ptr.Ptr("Maintenance")},
		{ID: 2, BlockDate: monday, StartTime: "15:00", EndTime: "16:00"},
	}

	slots := resolveDay(testVenue("06:00", "22:00"), monday, bookings, blocks, nil, testNow)

	assert.Equal(t, domain.SlotBooked, statusAt(slots, 9), "booking wins over block")
	assert.Equal(t, domain.SlotBlocked, statusAt(slots, 10), "block wins over past")
	assert.Equal(t, domain.SlotPast, statusAt(slots, 11))
	assert.Equal(t, domain.SlotPast, statusAt(slots, 12), "12:00 started before 12:30")
	assert.Equal(t, domain.SlotAvailable, statusAt(slots, 13))
	assert.Equal(t, domain.SlotBlocked, statusAt(slots, 15))
	assert.Equal(t, "Maintenance", *slots[10-6].BlockReason)
}

func TestResolveDay_PastWithoutCoverage(t *testing.T) {
	yesterday := monday.AddDate(0, 0, -1)
	slots := resolveDay(testVenue("06:00", "22:00"), yesterday, nil, nil, nil, testNow)

	for _, s := range slots {
		assert.Equal(t, domain.SlotPast, s.Status, "hour %d", s.Hour)
	}
}

func TestResolveDay_HeldOnlyOverAvailable(t *testing.T) {
	blocks := []*domain.BlockedSlot{{BlockDate: tuesday, StartTime: "07:00", EndTime: "08:00"}}
	holds := map[domain.SlotKey]string{
		{VenueID: 1, Date: tuesday, Hour: 6}: "a",
		{VenueID: 1, Date: tuesday, Hour: 7}: "b",
		{VenueID: 1, Date: monday, Hour: 8}:  "c",
	}

	slots := resolveDay(testVenue("06:00", "10:00"), tuesday, nil, blocks, holds, testNow)
	assert.Equal(t, domain.SlotHeld, statusAt(slots, 6))
	assert.Equal(t, domain.SlotBlocked, statusAt(slots, 7))
	assert.Equal(t, domain.SlotAvailable, statusAt(slots, 8))

	past := resolveDay(testVenue("06:00", "10:00"), monday, nil, nil, holds, testNow)
	assert.Equal(t, domain.SlotPast, statusAt(past, 8), "held slot in the past stays past")
}

func TestResolveWeek(t *testing.T) {
	days := resolveWeek(testVenue("06:00", "22:00"), monday, nil, nil, nil, testNow)

	require.Len(t, days, 7)
	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, time.Sunday, days[6].Date.Weekday())
	for _, d := range days {
		assert.Len(t, d.Slots, 16)
	}
}

func TestWeekStart(t *testing.T) {
	assert.Equal(t, monday, weekStart(monday))
	assert.Equal(t, monday, weekStart(time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, monday, weekStart(time.Date(2026, 10, 22, 15, 0, 0, 0, time.UTC)))
}
