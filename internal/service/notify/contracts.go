package notify

import (
	"context"

	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/pushrelay"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/whatsapp"
)

// PushRelay интерфейс клиента релея push-уведомлений
type PushRelay interface {
	NotifyBooking(ctx context.Context, n pushrelay.BookingNotification) (*pushrelay.RelayResponse, error)
}

// WhatsAppSender интерфейс клиента WhatsApp
type WhatsAppSender interface {
	Send(ctx context.Context, msg whatsapp.Message) (*whatsapp.SendResult, error)
}

// EventPublisher интерфейс продюсера доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
