package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// BlockedSlot manually blocked time range of a venue (maintenance, private event)
type BlockedSlot struct {
	ID        int64
	VenueID   int64
	BlockDate time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// Covers returns true if the block contains the hour on the given day
func (b *BlockedSlot) Covers(day time.Time, hour int) bool {
	if !SameDate(b.BlockDate, day) {
		return false
	}
	return b.StartTime.Hour() <= hour && hour < endHour(b.EndTime)
}
