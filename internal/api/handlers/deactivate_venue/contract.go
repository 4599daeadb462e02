package deactivate_venue

import "context"

type VenueService interface {
	Deactivate(ctx context.Context, venueID, ownerID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
