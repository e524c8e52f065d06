package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует события бронирований в kafka
// Потребитель - NotificationDispatcher (вне этого сервиса)
type Producer struct {
	writer *kafka.Writer
	log    Logger
}

// NewProducer создает новый producer событий бронирований
func NewProducer(brokers []string, topic string, log Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

// PublishReservationEvent публикует событие бронирования
// Ключ сообщения - id бронирования, чтобы события одного бронирования
// попадали в одну партицию и сохраняли порядок
func (p *Producer) PublishReservationEvent(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.ReservationID),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: type=%s, reservation_id=%s: %v", ErrPublish, event.Type, event.ReservationID, err)
	}

	p.log.Info("Published event type=%s, reservation_id=%s, status=%s",
		event.Type, event.ReservationID, event.Status)
	return nil
}

// Close закрывает соединение с kafka
func (p *Producer) Close() error {
	return p.writer.Close()
}
