package whatsapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/pkg/logger"
)

func confirmation() Message {
	return Message{
		To:           "+91 98000-00000",
		Type:         TypeBookingConfirmation,
		CustomerName: "Ravi",
		TurfName:     "Green Turf",
		BookingDate:  "2026-10-20",
		BookingTime:  "18:00-20:00",
		Amount:       900,
		TicketCode:   "AB12CD34",
	}
}

func TestClient_Send_DeepLinkFallback(t *testing.T) {
	client := NewClient(Config{}, time.Second, 5, logger.NewNop())

	res, err := client.Send(context.Background(), confirmation())
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.True(t, strings.HasPrefix(res.DeepLink, "https://wa.me/919800000000?text="))
	assert.Contains(t, res.DeepLink, "AB12CD34")
}

func TestClient_Send_Template(t *testing.T) {
	var got apiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PHONE/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		APIURL:        srv.URL,
		PhoneNumberID: "PHONE",
		Token:         "secret",
		Template:      "booking_confirmation",
	}, time.Second, 5, logger.NewNop())

	res, err := client.Send(context.Background(), confirmation())
	require.NoError(t, err)
	assert.Equal(t, "wamid.1", res.MessageID)
	assert.False(t, res.Fallback)

	assert.Equal(t, "template", got.Type)
	assert.Equal(t, "919800000000", got.To)
	require.NotNil(t, got.Template)
	assert.Equal(t, "booking_confirmation", got.Template.Name)
	assert.Len(t, got.Template.Components[0].Parameters, 6)
}

func TestClient_Send_InvalidPhone(t *testing.T) {
	client := NewClient(Config{}, time.Second, 5, logger.NewNop())

	_, err := client.Send(context.Background(), Message{To: "n/a"})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
