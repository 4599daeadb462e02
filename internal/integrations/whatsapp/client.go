package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	circuit "github.com/rubyist/circuitbreaker"
)

const deepLinkBase = "https://wa.me/"

// Config параметры WhatsApp Business API
type Config struct {
	APIURL        string
	PhoneNumberID string
	Token         string
	Template      string
	Language      string
}

// Client отправляет сообщения через WhatsApp Business API.
// Без токена или номера отправителя возвращает ссылку wa.me.
type Client struct {
	cfg        Config
	httpClient *circuit.HTTPClient
	log        Logger
}

// NewClient создает клиента WhatsApp
func NewClient(cfg Config, timeout time.Duration, threshold int64, log Logger) *Client {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	return &Client{
		cfg:        cfg,
		httpClient: circuit.NewHTTPClient(timeout, threshold, nil),
		log:        log,
	}
}

// Configured true, если заданы ключи Business API
func (c *Client) Configured() bool {
	return c.cfg.Token != "" && c.cfg.PhoneNumberID != ""
}

// Send отправляет сообщение или строит ссылку wa.me
func (c *Client) Send(ctx context.Context, msg Message) (*SendResult, error) {
	to := digitsOnly(msg.To)
	if to == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPhone, msg.To)
	}

	text := msg.Message
	if text == "" {
		text = FormatBookingMessage(msg)
	}

	if !c.Configured() {
		link := deepLinkBase + to + "?text=" + url.QueryEscape(text)
		c.log.Warn("WhatsApp Business API is not configured, using deep link for %s", to)
		return &SendResult{DeepLink: link, Fallback: true}, nil
	}

	body, err := json.Marshal(c.buildRequest(to, text, msg))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	endpoint := fmt.Sprintf("%s/%s/messages", strings.TrimRight(c.cfg.APIURL, "/"), c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := &SendResult{}
	if len(apiResp.Messages) > 0 {
		result.MessageID = apiResp.Messages[0].ID
	}
	c.log.Info("WhatsApp %s sent to %s, message_id=%s", msg.Type, to, result.MessageID)
	return result, nil
}

func (c *Client) buildRequest(to, text string, msg Message) apiRequest {
	if msg.Type != TypeBookingConfirmation || c.cfg.Template == "" {
		return apiRequest{
			MessagingProduct: "whatsapp",
			To:               to,
			Type:             "text",
			Text:             &apiText{Body: text},
		}
	}

	params := []apiParameter{
		{Type: "text", Text: msg.CustomerName},
		{Type: "text", Text: msg.TurfName},
		{Type: "text", Text: msg.BookingDate},
		{Type: "text", Text: msg.BookingTime},
		{Type: "text", Text: fmt.Sprintf("%.2f", msg.Amount)},
		{Type: "text", Text: msg.TicketCode},
	}

	return apiRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: &apiTemplate{
			Name:       c.cfg.Template,
			Language:   apiLanguage{Code: c.cfg.Language},
			Components: []apiComponent{{Type: "body", Parameters: params}},
		},
	}
}

// FormatBookingMessage текст подтверждения брони для ссылки wa.me и текстовых сообщений
func FormatBookingMessage(msg Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, your booking at %s is confirmed.\n", msg.CustomerName, msg.TurfName)
	fmt.Fprintf(&b, "Date: %s\nTime: %s\n", msg.BookingDate, msg.BookingTime)
	fmt.Fprintf(&b, "Amount: %.2f\n", msg.Amount)
	if msg.TicketCode != "" {
		fmt.Fprintf(&b, "Ticket: %s\n", msg.TicketCode)
	}
	return b.String()
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
