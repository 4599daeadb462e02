package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrMarshal возвращается при ошибке сериализации события
	ErrMarshal = errors.New("events: failed to marshal event")

	// ErrPublish возвращается при ошибке записи в Kafka
	ErrPublish = errors.New("events: failed to publish event")
)

// MessageWriter подмножество *kafka.Writer, нужное продюсеру
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события броней в Kafka. Ключ сообщения - ID площадки,
// чтобы события одной площадки шли в одну партицию по порядку.
type Producer struct {
	writer MessageWriter
}

// NewProducer создает продюсера для брокеров и топика
func NewProducer(brokers []string, topic string) *Producer {
	return NewProducerWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	})
}

// NewProducerWithWriter создает продюсера поверх готового writer
func NewProducerWithWriter(writer MessageWriter) *Producer {
	return &Producer{writer: writer}
}

// Publish отправляет событие
func (p *Producer) Publish(ctx context.Context, event BookingEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMarshal, event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.VenueID, 10)),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s booking %d: %v", ErrPublish, event.Type, event.BookingID, err)
	}
	return nil
}

// Close закрывает writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopProducer используется, когда Kafka выключена
type NopProducer struct{}

func (NopProducer) Publish(context.Context, BookingEvent) error { return nil }

func (NopProducer) Close() error { return nil }
