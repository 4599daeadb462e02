package get_venue_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-TurfManager/internal/api/handlers"
	"github.com/m04kA/SMC-TurfManager/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(r *http.Request, venueID, ownerID int64) (*models.ListVenueBookingsRequest, error) {
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		return nil, err
	}

	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		return nil, err
	}

	req := &models.ListVenueBookingsRequest{
		OwnerID: ownerID,
		VenueID: venueID,
		From:    from,
		To:      to,
	}

	// Парсим status если указан
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	return req, nil
}
