package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TurfManager/internal/domain"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func testEvent() BookingEvent {
	b := &domain.Booking{
		ID:            10,
		VenueID:       3,
		CustomerID:    7,
		BookingDate:   time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "20:00",
		Status:        domain.StatusBooked,
		PaymentStatus: domain.PaymentPartial,
		TotalAmount:   1000,
	}
	return NewBookingEvent(BookingCreated, b, time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC))
}

func TestProducer_Publish(t *testing.T) {
	writer := &recordingWriter{}
	producer := NewProducerWithWriter(writer)

	require.NoError(t, producer.Publish(context.Background(), testEvent()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "3", string(msg.Key))
	assert.Equal(t, "booking.created", string(msg.Headers[0].Value))

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, int64(10), decoded.BookingID)
	assert.Equal(t, "2026-10-20", decoded.BookingDate)
	assert.Equal(t, "20:00", decoded.EndTime)
}

func TestProducer_PublishError(t *testing.T) {
	producer := NewProducerWithWriter(&recordingWriter{err: errors.New("broker down")})

	err := producer.Publish(context.Background(), testEvent())
	assert.ErrorIs(t, err, ErrPublish)
}
