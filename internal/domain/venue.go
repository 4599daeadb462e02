package domain

import (
	"time"

	"github.com/m04kA/SMC-TurfManager/pkg/types"
)

// Venue represents a sports turf owned by a single owner
type Venue struct {
	ID                  int64
	OwnerID             int64
	Name                string
	Location            *string
	OpenTime            types.TimeString
	CloseTime           types.TimeString // "00:00" means midnight (24:00)
	SlotDurationMinutes int
	Tariff              Tariff
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OperatingHours returns the [start, end) hour range of the venue.
// A closing time of 00:00 is read as 24.
func (v *Venue) OperatingHours() (start, end int) {
	start = v.OpenTime.Hour()
	end = v.CloseTime.Hour()
	if end == 0 {
		end = 24
	}
	return start, end
}

// IsOwnedBy returns true if the venue belongs to the owner
func (v *Venue) IsOwnedBy(ownerID int64) bool {
	return v.OwnerID == ownerID
}
