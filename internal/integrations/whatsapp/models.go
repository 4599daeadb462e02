package whatsapp

// MessageType вид сообщения
type MessageType string

const (
	TypeBookingConfirmation MessageType = "booking_confirmation"
	TypeReminder            MessageType = "reminder"
	TypeText                MessageType = "text"
)

// Message входные данные отправки
type Message struct {
	To           string      `json:"to"`
	Message      string      `json:"message"`
	Type         MessageType `json:"type"`
	CustomerName string      `json:"customerName"`
	TurfName     string      `json:"turfName"`
	BookingDate  string      `json:"bookingDate"`
	BookingTime  string      `json:"bookingTime"`
	Amount       float64     `json:"amount"`
	TicketCode   string      `json:"ticketCode"`
}

// SendResult результат отправки. Без ключей Business API заполняется только DeepLink.
type SendResult struct {
	MessageID string
	DeepLink  string
	Fallback  bool
}

type apiRequest struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Template         *apiTemplate `json:"template,omitempty"`
	Text             *apiText     `json:"text,omitempty"`
}

type apiTemplate struct {
	Name       string         `json:"name"`
	Language   apiLanguage    `json:"language"`
	Components []apiComponent `json:"components"`
}

type apiLanguage struct {
	Code string `json:"code"`
}

type apiComponent struct {
	Type       string         `json:"type"`
	Parameters []apiParameter `json:"parameters"`
}

type apiParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiText struct {
	Body string `json:"body"`
}

type apiResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}
