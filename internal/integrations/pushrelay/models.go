package pushrelay

// BookingNotification тело запроса к релею push-уведомлений владельцу
type BookingNotification struct {
	TurfOwnerID  int64   `json:"turf_owner_id"`
	BookingID    int64   `json:"booking_id"`
	CustomerName string  `json:"customer_name"`
	BookingDate  string  `json:"booking_date"`
	StartTime    string  `json:"start_time"`
	TurfName     string  `json:"turf_name"`
	Amount       float64 `json:"amount"`
}

// RelayResponse ответ релея
type RelayResponse struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Message string `json:"message,omitempty"`
}
