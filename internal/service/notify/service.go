package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
	"github.com/m04kA/SMC-TurfManager/internal/infra/events"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/pushrelay"
	"github.com/m04kA/SMC-TurfManager/internal/integrations/whatsapp"
	"github.com/m04kA/SMC-TurfManager/pkg/metrics"
)

// Каналы уведомлений для метрик
const (
	ChannelPush     = "push"
	ChannelWhatsApp = "whatsapp"
	ChannelKafka    = "kafka"
)

// Dispatcher рассылает уведомления о бронях в фоне.
// Ошибки логируются и считаются в метриках, повторов нет, на бронь они не влияют.
type Dispatcher struct {
	push      PushRelay
	whatsapp  WhatsAppSender
	publisher EventPublisher
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    Logger
	now       func() time.Time

	wg sync.WaitGroup
}

// NewDispatcher создает диспетчер. metrics может быть nil
func NewDispatcher(
	push PushRelay,
	whatsapp WhatsAppSender,
	publisher EventPublisher,
	timeout time.Duration,
	m *metrics.Metrics,
	logger Logger,
) *Dispatcher {
	return &Dispatcher{
		push:      push,
		whatsapp:  whatsapp,
		publisher: publisher,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// BookingCreated уведомляет владельца (push), клиента (WhatsApp) и публикует событие
func (d *Dispatcher) BookingCreated(venue *domain.Venue, booking *domain.Booking) {
	v, b := *venue, *booking

	d.run(func(ctx context.Context) {
		d.notifyOwner(ctx, &v, &b)
		d.notifyCustomer(ctx, &v, &b)
		d.publish(ctx, events.BookingCreated, &b)
	})
}

// BookingChanged публикует событие изменения брони
func (d *Dispatcher) BookingChanged(eventType events.EventType, booking *domain.Booking) {
	b := *booking

	d.run(func(ctx context.Context) {
		d.publish(ctx, eventType, &b)
	})
}

// Wait дожидается завершения фоновых рассылок
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("notify: panic in dispatch: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		fn(ctx)
	}()
}

func (d *Dispatcher) notifyOwner(ctx context.Context, venue *domain.Venue, b *domain.Booking) {
	if d.push == nil {
		return
	}

	_, err := d.push.NotifyBooking(ctx, pushrelay.BookingNotification{
		TurfOwnerID:  venue.OwnerID,
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		StartTime:    b.StartTime.String(),
		TurfName:     venue.Name,
		Amount:       b.TotalAmount,
	})
	if err != nil {
		d.failed(ChannelPush, fmt.Sprintf("booking_id=%d", b.ID), err)
	}
}

func (d *Dispatcher) notifyCustomer(ctx context.Context, venue *domain.Venue, b *domain.Booking) {
	if d.whatsapp == nil || b.CustomerPhone == nil || *b.CustomerPhone == "" {
		return
	}

	res, err := d.whatsapp.Send(ctx, whatsapp.Message{
		To:           *b.CustomerPhone,
		Type:         whatsapp.TypeBookingConfirmation,
		CustomerName: b.CustomerName,
		TurfName:     venue.Name,
		BookingDate:  b.BookingDate.Format(domain.DateFormat),
		BookingTime:  fmt.Sprintf("%s-%s", b.StartTime, b.EndTime),
		Amount:       b.TotalAmount,
		TicketCode:   b.TicketCode,
	})
	if err != nil {
		d.failed(ChannelWhatsApp, fmt.Sprintf("booking_id=%d", b.ID), err)
		return
	}
	if res.Fallback {
		d.logger.Info("notify: WhatsApp deep link for booking_id=%d: %s", b.ID, res.DeepLink)
	}
}

func (d *Dispatcher) publish(ctx context.Context, eventType events.EventType, b *domain.Booking) {
	if d.publisher == nil {
		return
	}

	if err := d.publisher.Publish(ctx, events.NewBookingEvent(eventType, b, d.now())); err != nil {
		d.failed(ChannelKafka, fmt.Sprintf("%s booking_id=%d", eventType, b.ID), err)
	}
}

func (d *Dispatcher) failed(channel, subject string, err error) {
	d.logger.Error("notify: %s delivery failed for %s: %v", channel, subject, err)
	if d.metrics != nil {
		d.metrics.NotificationsFailed.WithLabelValues(channel).Inc()
	}
}
