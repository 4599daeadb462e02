package pushrelay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
)

// Client клиент релея push-уведомлений
type Client struct {
	url        string
	httpClient *circuit.HTTPClient
	log        Logger
}

// NewClient создает клиента. После threshold подряд неудачных вызовов
// автомат размыкается и запросы не уходят в сеть.
func NewClient(url string, timeout time.Duration, threshold int64, log Logger) *Client {
	return &Client{
		url:        url,
		httpClient: circuit.NewHTTPClient(timeout, threshold, nil),
		log:        log,
	}
}

// NotifyBooking отправляет владельцу уведомление о новой брони
func (c *Client) NotifyBooking(ctx context.Context, n BookingNotification) (*RelayResponse, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var result RelayResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Push relay notified owner_id=%d about booking_id=%d, sent=%d", n.TurfOwnerID, n.BookingID, result.Sent)
	return &result, nil
}
